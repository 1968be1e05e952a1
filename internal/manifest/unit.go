package manifest

// Unit is a unit parsed from one manifest file. Its resource is the file
// path it was read from.
type Unit struct {
	Name     string   `yaml:"name" json:"name"`
	Provided []string `yaml:"provides,omitempty" json:"provides,omitempty"`
	Required []string `yaml:"requires,omitempty" json:"requires,omitempty"`

	// Path is the manifest file the unit was parsed from.
	Path string `yaml:"-" json:"path"`
}

// ID returns the unit name.
func (u *Unit) ID() string { return u.Name }

// Provides returns the provided namespaces.
func (u *Unit) Provides() []string { return u.Provided }

// Requires returns the required namespaces.
func (u *Unit) Requires() []string { return u.Required }

// Resource returns the manifest path.
func (u *Unit) Resource() string { return u.Path }

func (u *Unit) String() string { return u.Name }
