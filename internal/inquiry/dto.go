// AngelaMos | 2026
// dto.go

package inquiry

type CreateInquiryRequest struct {
	CarID         string `json:"car_id"         validate:"required,max=64"`
	Name          string `json:"name"           validate:"required,max=200"`
	Email         string `json:"email"          validate:"required,contact_email,max=255"`
	City          string `json:"city"           validate:"required,max=100"`
	ContactNumber string `json:"contact_number" validate:"required,max=32"`
	Inquiry       string `json:"inquiry"        validate:"required,max=5000"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type InquiryResponse struct {
	Message string `json:"message,omitempty"`
	Inquiry any    `json:"inquiry"`
}

type InquiryListResponse struct {
	Inquiries []InquiryWithCar `json:"inquiries"`
}

type InquiryPageResponse struct {
	Inquiries  []InquiryWithCar `json:"inquiries"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	Total      int              `json:"total"`
	TotalPages int              `json:"total_pages"`
}
