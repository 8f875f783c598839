package services

import (
	"github.com/clamsproject/app-datimex-extraction/internal/core/domain"
)

// Application identity reported in metadata and stamped on every view.
const (
	AppName        = "Datimex Extraction"
	AppIdentifier  = "datimex-extraction"
	AppDescription = "Finds date-like expressions in text documents and annotates " +
		"each with its normalised YYYY-MM-DD value."
	AppURL     = "https://github.com/clamsproject/app-datimex-extraction"
	AppLicense = "Apache 2.0"
)

// Annotation type produced by the extraction service.
const AnnotationType = "Annotation"

// NewAppMetadata describes the extraction service at the given version.
func NewAppMetadata(version string) domain.AppMetadata {
	if version == "" {
		version = "dev"
	}
	return domain.AppMetadata{
		Name:        AppName,
		Description: AppDescription,
		Identifier:  AppIdentifier,
		URL:         AppURL,
		License:     AppLicense,
		Version:     version,
		Input: []domain.IOSpec{
			{Type: domain.DocumentTypeText.String()},
		},
		Output: []domain.IOSpec{
			{Type: AnnotationType, Properties: map[string]string{"category": domain.CategoryDate}},
		},
		Parameters: []domain.ParameterSpec{
			{
				Name:        "pattern",
				Description: "Regular expression used to find dates. Empty uses the built-in pattern. Alias: regex.",
				Type:        "string",
				Default:     "",
			},
			{
				Name:        "after",
				Description: "Drop dates earlier than this YYYY-MM-DD date.",
				Type:        "string",
				Default:     "",
			},
			{
				Name:        "before",
				Description: "Drop dates later than this YYYY-MM-DD date.",
				Type:        "string",
				Default:     "",
			},
		},
	}
}
