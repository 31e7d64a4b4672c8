package models

// SourceInfo describes an upstream source that can be serialized
type SourceInfo struct {
	Kind        string `json:"kind"`
	Name        string `json:"name"`
	Description string `json:"description"`
	DataURL     string `json:"data_url"`
	I18nURL     string `json:"i18n_url,omitempty"` // empty when the kind needs no localization
}
