package ingest

import "encoding/json"

// LocalRecord is a row from the on-premises register ledger.
type LocalRecord struct {
	ID            string   `json:"id"`
	VendorID      string   `json:"vendorId,omitempty"`
	VendorName    string   `json:"vendorName"`
	Label         string   `json:"label,omitempty"`
	TotalAmount   *float64 `json:"totalAmount"`
	PaymentMethod string   `json:"paymentMethod"`
	DateMs        *int64   `json:"date"`
	Canceled      bool     `json:"canceled"`
}

// SyncedRecord is a row mirrored from the cloud ledger that collects
// the other terminals.
type SyncedRecord struct {
	ID            string   `json:"id"`
	VendorID      string   `json:"vendor_id,omitempty"`
	VendorName    string   `json:"vendor_name"`
	Label         string   `json:"label,omitempty"`
	TotalAmount   *float64 `json:"total_amount"`
	PaymentMethod string   `json:"payment_method"`
	CreatedAt     string   `json:"created_at"`
	Canceled      bool     `json:"canceled"`
}

// ExternalRecord is an invoice pushed by the external feed. The feed
// has shipped two generations of field names, so both spellings are
// accepted per field.
type ExternalRecord struct {
	InvoiceNumber string
	VendorName    string
	Product       string
	TotalTTC      *float64
	PaymentMethod string
	CreatedAt     string
	Status        string
	Canceled      bool
}

type externalRecordWire struct {
	NumeroFacture  string   `json:"numero_facture"`
	InvoiceNumber  string   `json:"invoiceNumber"`
	Conseiller     string   `json:"conseiller"`
	VendorName     string   `json:"vendorName"`
	Produit        string   `json:"produit"`
	Product        string   `json:"product"`
	MontantTTC     *float64 `json:"montant_ttc"`
	TotalTTC       *float64 `json:"totalTTC"`
	PaymentMethod  string   `json:"payment_method"`
	CreatedAt      string   `json:"created_at"`
	Status         string   `json:"status"`
	Canceled       bool     `json:"canceled"`
}

// UnmarshalJSON folds both field-name generations into one record.
func (e *ExternalRecord) UnmarshalJSON(data []byte) error {
	var wire externalRecordWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	e.InvoiceNumber = firstNonEmpty(wire.NumeroFacture, wire.InvoiceNumber)
	e.VendorName = firstNonEmpty(wire.Conseiller, wire.VendorName)
	e.Product = firstNonEmpty(wire.Produit, wire.Product)
	e.TotalTTC = wire.MontantTTC
	if e.TotalTTC == nil {
		e.TotalTTC = wire.TotalTTC
	}
	e.PaymentMethod = wire.PaymentMethod
	e.CreatedAt = wire.CreatedAt
	e.Status = wire.Status
	e.Canceled = wire.Canceled
	return nil
}

// IsCanceled reports whether the invoice must be excluded before merge.
func (e ExternalRecord) IsCanceled() bool {
	return e.Canceled || e.Status == "canceled"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
