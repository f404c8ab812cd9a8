package dto

import (
	"github.com/SscSPs/bills_app/internal/core/forms"
)

// CreateFormRequest opens a form session. AccountID 0 starts a new account.
type CreateFormRequest struct {
	AccountID int64 `json:"accountID" binding:"min=0"`
}

// EditFieldRequest sets one form field from its text form.
type EditFieldRequest struct {
	Field string `json:"field" binding:"required,oneof=description date amount paid type" example:"description"`
	Value string `json:"value" example:"Rent"`
}

// FormResponse is the presentation snapshot of a form session.
type FormResponse struct {
	SessionID     string           `json:"sessionID"`
	AccountID     int64            `json:"accountID"`
	IsNew         bool             `json:"isNew"`
	Phase         forms.PhaseName  `json:"phase"`
	Fields        *forms.Fields    `json:"fields,omitempty"`
	ConfirmDelete bool             `json:"confirmDelete"`
	Message       forms.Message    `json:"message,omitempty"`
	Processing    bool             `json:"processing"`
	LoadError     string           `json:"loadError,omitempty"`
	NotFound      bool             `json:"notFound,omitempty"`
	Outcome       forms.Outcome    `json:"outcome,omitempty"`
	Account       *AccountResponse `json:"account,omitempty"`
}

// ToFormResponse converts a forms.View to its DTO.
func ToFormResponse(sessionID string, v forms.View) FormResponse {
	res := FormResponse{
		SessionID:     sessionID,
		AccountID:     v.AccountID,
		IsNew:         v.IsNew,
		Phase:         v.Phase,
		Fields:        v.Fields,
		ConfirmDelete: v.ConfirmDelete,
		Message:       v.Message,
		Processing:    v.Processing,
		LoadError:     v.LoadError,
		NotFound:      v.NotFound,
		Outcome:       v.Outcome,
	}
	if v.Account != nil {
		acc := ToAccountResponse(v.Account)
		res.Account = &acc
	}
	return res
}

// ValidationErrorResponse is returned with 422 when form fields are invalid.
type ValidationErrorResponse struct {
	Error   string                            `json:"error"`
	Fields  map[forms.FieldName]forms.Message `json:"fields,omitempty"`
	Message forms.Message                     `json:"message,omitempty"`
	Form    *FormResponse                     `json:"form,omitempty"`
}
