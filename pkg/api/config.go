package api

// Default property and naming constants used when config fields are unset.
const (
	// DefaultMimeTypeProperty is the versioned property carrying a file's
	// media type.
	DefaultMimeTypeProperty = "mime-type"
	// DefaultNotifySubject prefixes generated notification subjects.
	DefaultNotifySubject = "[commit]"
)

// Config is the full gate configuration. Flat fields configure the built-in
// checks; Checks adds explicitly configured check entries on top, in the
// order given.
type Config struct {
	// Repo names the repository, stamped onto audit events and
	// notifications.
	Repo string `json:"repo,omitempty" mapstructure:"repo"`

	// Structure is the declarative repository structure specification,
	// in the generic decoded form accepted by structure.Compile.
	Structure any `json:"structure,omitempty" mapstructure:"structure"`

	MimeTypes  *MimeTypesConfig  `json:"mimetypes,omitempty" mapstructure:"mimetypes"`
	Properties []PropertyRule    `json:"properties,omitempty" mapstructure:"properties"`
	LogMessage *LogMessageConfig `json:"logmsg,omitempty" mapstructure:"logmsg"`
	Notify     *NotifyConfig     `json:"notify,omitempty" mapstructure:"notify"`
	ConfMirror []ConfMirrorRule  `json:"confmirror,omitempty" mapstructure:"confmirror"`

	// Checks are explicitly configured check entries processed after the
	// flat fields.
	Checks []CheckConfig `json:"checks,omitempty" mapstructure:"checks"`
}

// CheckConfig is one explicitly configured check entry.
type CheckConfig struct {
	Type    string         `json:"type" mapstructure:"type"`
	Enabled *bool          `json:"enabled,omitempty" mapstructure:"enabled"`
	Config  map[string]any `json:"config,omitempty" mapstructure:"config"`
}

// IsEnabled reports whether the entry is active; entries are enabled unless
// explicitly disabled.
func (c CheckConfig) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// MimeTypesConfig configures the mimetypes check: added files must carry the
// media-type property, optionally restricted to an allowlist.
type MimeTypesConfig struct {
	// Property is the property name holding the type; defaults to
	// DefaultMimeTypeProperty.
	Property string `json:"property,omitempty" mapstructure:"property"`
	// Allowed optionally restricts the accepted types. Entries are exact
	// types or "type/*" families.
	Allowed []string `json:"allowed,omitempty" mapstructure:"allowed"`
}

// PropertyRule requires a property on every added or updated path whose name
// matches Pattern.
type PropertyRule struct {
	// Pattern selects paths: "/re/" compiles to a regex, anything else is
	// an exact path.
	Pattern string `json:"pattern" mapstructure:"pattern"`
	// Prop is the required property name.
	Prop string `json:"prop" mapstructure:"prop"`
	// Value constrains the property value: empty requires mere existence,
	// "/re/" requires a match, anything else exact equality.
	Value string `json:"value,omitempty" mapstructure:"value"`
}

// LogMessageConfig configures the commit log message check.
type LogMessageConfig struct {
	// MinLength is the minimum message length in bytes; zero means any
	// non-empty message.
	MinLength int `json:"min_length,omitempty" mapstructure:"min_length"`
	// Match is an optional "/re/" or plain regex the message must match,
	// e.g. an issue-reference requirement.
	Match string `json:"match,omitempty" mapstructure:"match"`
}

// NotifyConfig configures post-commit notification formatting. Delivery is
// out of scope: formatted messages are handed to an outbox directory.
type NotifyConfig struct {
	From    string   `json:"from" mapstructure:"from"`
	To      []string `json:"to" mapstructure:"to"`
	Subject string   `json:"subject,omitempty" mapstructure:"subject"`
	// OutboxDir receives one RFC 5322 formatted file per commit.
	OutboxDir string `json:"outbox_dir" mapstructure:"outbox_dir"`
}

// ConfMirrorRule mirrors one committed file into a destination path after
// each commit, keeping server-side configuration in sync with the
// repository.
type ConfMirrorRule struct {
	// Source is the repository path to mirror.
	Source string `json:"source" mapstructure:"source"`
	// Dest is the filesystem destination.
	Dest string `json:"dest" mapstructure:"dest"`
	// PostCommand is an optional command line run after a successful
	// mirror, split with shell quoting rules.
	PostCommand string `json:"post_command,omitempty" mapstructure:"post_command"`
}
