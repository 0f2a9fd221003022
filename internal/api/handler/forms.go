package handler

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/99minutos/invoice-dashboard/internal/core/domain"
)

const defaultRedirect = "/dashboard"

type invoiceForm struct {
	CustomerID string `form:"customerId" validate:"required"`
	Amount     string `form:"amount"     validate:"required"`
	Status     string `form:"status"     validate:"required,oneof=pending paid"`
}

var invoiceMessages = map[string]string{
	"customerId": "Please select a customer.",
	"amount":     "Please enter an amount greater than $0.",
	"status":     "Please select an invoice status.",
}

// ParseInvoiceForm validates a submitted invoice form and converts the amount
// to cents. summary becomes the ValidationError message on failure.
func (fv *formValidator) ParseInvoiceForm(values url.Values, summary string) (domain.InvoiceInput, error) {
	form := invoiceForm{
		CustomerID: strings.TrimSpace(values.Get("customerId")),
		Amount:     strings.TrimSpace(values.Get("amount")),
		Status:     strings.TrimSpace(values.Get("status")),
	}

	var ve *domain.ValidationError
	if err := fv.check(form, summary, invoiceMessages); err != nil {
		var ok bool
		if ve, ok = err.(*domain.ValidationError); !ok {
			return domain.InvoiceInput{}, err
		}
	}

	cents, amountOK := parseAmount(form.Amount)
	if !amountOK && form.Amount != "" {
		if ve == nil {
			ve = domain.NewValidationError(summary)
		}
		ve.Add("amount", invoiceMessages["amount"])
	}

	if ve != nil {
		return domain.InvoiceInput{}, ve
	}
	return domain.InvoiceInput{
		CustomerID:  form.CustomerID,
		AmountCents: cents,
		Status:      domain.InvoiceStatus(form.Status),
	}, nil
}

// parseAmount reads a major-unit amount and returns it in cents. Only finite
// amounts that are still positive after rounding to cents are accepted.
func parseAmount(raw string) (int64, bool) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, false
	}
	cents, err := domain.MajorToMinor(amount)
	if err != nil || cents <= 0 {
		return 0, false
	}
	return cents, true
}

// SafeRedirect returns target when it is a same-site absolute path, otherwise
// the dashboard home.
func SafeRedirect(target string) string {
	if target == "" || !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.Contains(target, `\`) {
		return defaultRedirect
	}
	u, err := url.Parse(target)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return defaultRedirect
	}
	return target
}

// parsePage reads ?page=. Anything non-numeric or below 1 means page 1.
func parsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}
