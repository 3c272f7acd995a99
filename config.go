package wikihtml

// Output formats.
const (
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
)

// Config holds settings loaded from the configuration file. Zero values mean
// the setting was not given.
type Config struct {
	OutputDir   string `yaml:"output_dir"`
	Format      string `yaml:"format"`
	Concurrency int    `yaml:"concurrency"`
	Split       bool   `yaml:"split"`
	Verbose     bool   `yaml:"verbose"`
	Catalog     string `yaml:"catalog"`

	// Namespaces maps namespace codes to a class name: content, meta or file.
	Namespaces map[int]string `yaml:"namespaces"`
}

// Validate returns an error if the configuration contains invalid fields.
func (c *Config) Validate() error {
	switch c.Format {
	case "", FormatHTML, FormatMarkdown:
	default:
		return Errorf(EINVALID, "unknown output format %q", c.Format)
	}
	if c.Concurrency < 0 {
		return Errorf(EINVALID, "concurrency must not be negative")
	}
	_, err := c.NamespaceOverrides()
	return err
}

// NamespaceOverrides parses the namespace section into classes.
func (c *Config) NamespaceOverrides() (map[int]NamespaceClass, error) {
	if len(c.Namespaces) == 0 {
		return nil, nil
	}
	overrides := make(map[int]NamespaceClass, len(c.Namespaces))
	for ns, name := range c.Namespaces {
		class, err := ParseNamespaceClass(name)
		if err != nil {
			return nil, Errorf(EINVALID, "namespace %d: %s", ns, ErrorMessage(err))
		}
		overrides[ns] = class
	}
	return overrides, nil
}
