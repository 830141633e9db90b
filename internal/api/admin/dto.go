package admin

import "storefront-cms/internal/domain/catalog"

// Response is the envelope every admin endpoint answers with.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

var labels = map[string]string{
	catalog.KindProducts:    "Product",
	catalog.KindCategories:  "Category",
	catalog.KindFarms:       "Farm",
	catalog.KindSocialMedia: "Social link",
	catalog.KindPages:       "Page",
}

var pastTense = map[string]string{
	catalog.ActionCreate: "created",
	catalog.ActionUpdate: "updated",
	catalog.ActionDelete: "deleted",
}

func message(kind, action string) string {
	return labels[kind] + " " + pastTense[action]
}
