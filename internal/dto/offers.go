package dto

type OfferDTO struct {
	ID         int    `json:"id" example:"9004"`
	Name       string `json:"name" example:"Coin Blast"`
	PreviewURL string `json:"preview_url" example:"https://example.com/coin-blast"`
}

type TrackingLinkResponseDTO struct {
	URL string `json:"url" example:"https://tracking.example.com/abc?sub1=42"`
}
