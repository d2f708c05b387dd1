package company

type CompanyResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Logo            *string `json:"logo,omitempty"`
	AnnualLeaveDays int     `json:"annualLeaveDays"`
}

type UpdateCompanyRequest struct {
	Name            *string `json:"name" binding:"omitempty,min=1,max=150"`
	Logo            *string `json:"logo" binding:"omitempty,url"`
	AnnualLeaveDays *int    `json:"annualLeaveDays" binding:"omitempty,min=0,max=365"`
}
