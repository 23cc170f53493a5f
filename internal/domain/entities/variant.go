package entities

// VersionPlaceholder is the token substituted in download URL templates
const VersionPlaceholder = "{version}"

// VariantSpec describes one build flavor of the tracked package
type VariantSpec struct {
	Name                string
	VersionPageURL      string
	VersionPattern      string // Regex with exactly one capture group yielding the version token
	DownloadURLTemplate string // URL containing exactly one {version} placeholder
}

// ResolvedVersion is the version token discovered for a variant in this run
type ResolvedVersion struct {
	VariantName string
	Token       string
}
