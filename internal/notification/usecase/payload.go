package usecase

import (
	"time"

	"github.com/rameshbanalab/ServNest-sub001/internal/notification/domain"
	"github.com/rameshbanalab/ServNest-sub001/pkg/fcm"
)

// buildPayload assembles the provider payload for an admin dispatch. Every
// value in the data block must be a string; the client reads navigationType
// and itemId from it to route a tap.
func buildPayload(req *domain.NotificationRequest, adminID string) fcm.Payload {
	navigationType := req.NavigationType
	if navigationType == "" {
		navigationType = domain.NavHome
	}

	data := map[string]string{
		"type":           "admin_notification",
		"navigationType": string(navigationType),
		"title":          req.Title,
		"body":           req.Body,
		"action":         "open_screen",
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
		"adminId":        adminID,
		"targetType":     string(req.TargetType),
	}
	if req.ItemID != "" {
		data["itemId"] = req.ItemID
	}

	return fcm.Payload{
		Title:    req.Title,
		Body:     req.Body,
		ImageURL: req.ImageURL,
		Data:     data,
	}
}
