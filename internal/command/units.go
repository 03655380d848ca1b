// SPDX-License-Identifier: MPL-2.0

package command

type (
	// Cucumber runs the project's cucumber features.
	Cucumber struct{ unit }

	// Jasmine runs the jasmine JavaScript suite through its rake task.
	Jasmine struct{ unit }

	// Brakeman runs the brakeman static security scanner.
	Brakeman struct{ unit }

	// BundleAudit checks the lockfile against the ruby-advisory-db.
	BundleAudit struct{ unit }

	// Shamus runs the shamus project validator. It is the only unit that
	// requires validation mode rather than being suppressed by it.
	Shamus struct{ unit }
)

// NewCucumber creates the cucumber unit.
func NewCucumber(env Environment, deps Dependencies) *Cucumber {
	return &Cucumber{unit{env: env, deps: deps}}
}

// Name returns the unit name
func (c *Cucumber) Name() string { return "cucumber" }

// Available reports whether cucumber is declared outside validation mode.
func (c *Cucumber) Available() bool {
	return !c.validating() && c.declaresAny("cucumber")
}

// Command returns the feature runner invocation.
func (c *Cucumber) Command() string {
	if c.parallel() {
		return "bundle exec rake parallel:features"
	}
	return "bundle exec cucumber"
}

// NewJasmine creates the jasmine unit.
func NewJasmine(env Environment, deps Dependencies) *Jasmine {
	return &Jasmine{unit{env: env, deps: deps}}
}

// Name returns the unit name
func (c *Jasmine) Name() string { return "jasmine" }

// Available reports whether jasmine is declared outside validation mode.
func (c *Jasmine) Available() bool {
	return !c.validating() && c.declaresAny("jasmine")
}

// Command returns the jasmine CI task.
func (c *Jasmine) Command() string { return "bundle exec rake jasmine:ci" }

// NewBrakeman creates the brakeman unit.
func NewBrakeman(env Environment, deps Dependencies) *Brakeman {
	return &Brakeman{unit{env: env, deps: deps}}
}

// Name returns the unit name
func (c *Brakeman) Name() string { return "brakeman" }

// Available reports whether brakeman is declared.
func (c *Brakeman) Available() bool { return c.declaresAny("brakeman") }

// Command returns the brakeman invocation.
func (c *Brakeman) Command() string { return "bundle exec brakeman --quiet --exit-on-warn" }

// NewBundleAudit creates the bundle_audit unit.
func NewBundleAudit(env Environment, deps Dependencies) *BundleAudit {
	return &BundleAudit{unit{env: env, deps: deps}}
}

// Name returns the unit name
func (c *BundleAudit) Name() string { return "bundle_audit" }

// Available reports whether bundler-audit is declared.
func (c *BundleAudit) Available() bool { return c.declaresAny("bundler-audit") }

// Command returns the audit invocation.
func (c *BundleAudit) Command() string { return "bundle exec bundle-audit check --update" }

// NewShamus creates the shamus unit.
func NewShamus(env Environment, deps Dependencies) *Shamus {
	return &Shamus{unit{env: env, deps: deps}}
}

// Name returns the unit name
func (c *Shamus) Name() string { return "shamus" }

// Available reports whether shamus is declared and validation mode is on.
func (c *Shamus) Available() bool {
	return c.validating() && c.declaresAny("shamus")
}

// Command returns the shamus invocation.
func (c *Shamus) Command() string { return "bundle exec shamus" }
