package forms

import (
	"strings"

	"github.com/SscSPs/bills_app/internal/core/domain"
	"github.com/SscSPs/bills_app/internal/utils"
)

// Message is a code for a user facing message. Clients translate it.
type Message string

const (
	NoMessage              Message = ""
	MsgDescriptionRequired Message = "description_required"
	MsgDateRequired        Message = "date_required"
	MsgInvalidDate         Message = "invalid_date"
	MsgInvalidAmount       Message = "invalid_amount"
	MsgInvalidType         Message = "invalid_type"
	MsgInvalidPaid         Message = "invalid_paid"
	MsgSaveFailed          Message = "save_failed"
	MsgDeleteFailed        Message = "delete_failed"
)

// FieldName identifies an editable field.
type FieldName string

const (
	FieldDescription FieldName = "description"
	FieldDate        FieldName = "date"
	FieldAmount      FieldName = "amount"
	FieldPaid        FieldName = "paid"
	FieldType        FieldName = "type"
)

// Field is a text input together with its current validation error.
type Field struct {
	Value string  `json:"value"`
	Error Message `json:"error,omitempty"`
}

// Valid reports whether the field carries no error.
func (f Field) Valid() bool {
	return f.Error == NoMessage
}

// Fields is the editable content of the form. Paid and Type are typed;
// text conversion only happens in Edit.
type Fields struct {
	Description Field              `json:"description"`
	Date        Field              `json:"date"`
	Amount      Field              `json:"amount"`
	Paid        bool               `json:"paid"`
	Type        domain.AccountType `json:"type"`
}

// Valid reports whether every text field is free of errors.
func (f Fields) Valid() bool {
	return f.Description.Valid() && f.Date.Valid() && f.Amount.Valid()
}

func (f Fields) errors() map[FieldName]Message {
	errs := map[FieldName]Message{}
	if !f.Description.Valid() {
		errs[FieldDescription] = f.Description.Error
	}
	if !f.Date.Valid() {
		errs[FieldDate] = f.Date.Error
	}
	if !f.Amount.Valid() {
		errs[FieldAmount] = f.Amount.Error
	}
	return errs
}

func blankFields() Fields {
	return Fields{Type: domain.Expense}
}

func fieldsFrom(acc domain.Account) Fields {
	return Fields{
		Description: Field{Value: acc.Description},
		Date:        Field{Value: utils.FormatDate(acc.Date)},
		Amount:      Field{Value: utils.FormatAmountInput(acc.Amount)},
		Paid:        acc.Paid,
		Type:        acc.Type,
	}
}

func validateDescription(description string) Message {
	if strings.TrimSpace(description) == "" {
		return MsgDescriptionRequired
	}
	return NoMessage
}
