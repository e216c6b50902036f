// ABOUTME: Pharmacy point-of-sale endpoints of the clinic API
// ABOUTME: Posts cart sales over the counter or billed to a consult

package client

import (
	"context"
	"net/http"
)

const salesURI = "/v1/sale-medicines"

// SaleItem is one cart line: a medicine and how many units to sell
type SaleItem struct {
	MedicineID string `json:"medicineId"`
	Quantity   int    `json:"quantity"`
}

// ConsultSaleItem is a cart line billed to an existing consult
type ConsultSaleItem struct {
	ConsultID  string `json:"consultId"`
	MedicineID string `json:"medicineId"`
	Quantity   int    `json:"quantity"`
}

// Sale represents one recorded medicine sale
type Sale struct {
	ID           string  `json:"id"`
	ConsultID    string  `json:"consultId,omitempty"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price"`
	Total        float64 `json:"total"`
	MedicineCost float64 `json:"medicineCost"`
	Profit       float64 `json:"profit"`
}

// SellMedicines posts an over-the-counter cart sale. The cart is sent as
// a bare JSON array, one element per line item.
func (c *Client) SellMedicines(ctx context.Context, cart []SaleItem) ([]Sale, error) {
	var sales []Sale
	if err := c.do(ctx, http.MethodPost, salesURI+"/farmacia/varios", nil, cart, &sales); err != nil {
		return nil, err
	}
	return sales, nil
}

// SellMedicinesToConsult posts a cart sale billed to a consult
func (c *Client) SellMedicinesToConsult(ctx context.Context, cart []ConsultSaleItem) ([]Sale, error) {
	var sales []Sale
	if err := c.do(ctx, http.MethodPost, salesURI+"/consult/varios", nil, cart, &sales); err != nil {
		return nil, err
	}
	return sales, nil
}

// GetSale returns one recorded sale by id
func (c *Client) GetSale(ctx context.Context, id string) (*Sale, error) {
	var sale Sale
	if err := c.do(ctx, http.MethodGet, salesURI+"/"+id, nil, nil, &sale); err != nil {
		return nil, err
	}
	return &sale, nil
}
