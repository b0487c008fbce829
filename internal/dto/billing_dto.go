// FILE: internal/dto/billing_dto.go
package dto

// WebhookAckResponse is returned for every accepted webhook delivery,
// including duplicates and unknown variants, so the sender stops retrying.
type WebhookAckResponse struct {
	Received bool   `json:"received"`
	Granted  int    `json:"granted,omitempty"`
	Plan     string `json:"plan,omitempty"`
}

type PlanResponse struct {
	VariantId int    `json:"variant_id"`
	Name      string `json:"name"`
	Credits   int    `json:"credits"`
}
