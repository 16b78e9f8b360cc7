package dto

type ChannelPricing struct {
	SMS      string `json:"sms"`
	WhatsApp string `json:"whatsapp"`
	Currency string `json:"currency"`
}

type CreditsResponse struct {
	Success  bool           `json:"success"`
	SMS      int64          `json:"sms"`
	WhatsApp int64          `json:"whatsapp"`
	Pricing  ChannelPricing `json:"pricing"`
}
