package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/Hariprajaa05/Farmer-project/internal/logic"
	"github.com/shopspring/decimal"
)

func TestRupeesMarshalJSON(t *testing.T) {
	tests := []struct {
		paise int64
		want  string
	}{
		{0, `{"amount":0.00}`},
		{5, `{"amount":0.05}`},
		{3250, `{"amount":32.50}`},
		{100000, `{"amount":1000.00}`},
	}
	for _, tt := range tests {
		raw, err := json.Marshal(struct {
			Amount Rupees `json:"amount"`
		}{Rupees(tt.paise)})
		if err != nil {
			t.Fatalf("marshal %d: %v", tt.paise, err)
		}
		if string(raw) != tt.want {
			t.Fatalf("marshal %d: expected %s, got %s", tt.paise, tt.want, raw)
		}
	}
}

func TestParseRupees(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"12", 1200, false},
		{"12.5", 1250, false},
		{"0.01", 1, false},
		{"-3.25", -325, false},
		{"1.001", 0, true},
		{"99999999999999999999", 0, true},
		{"-99999999999999999999", 0, true},
		{"-184467440737095016.16", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRupees(decimal.RequireFromString(tt.in))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %d", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{fmt.Errorf("%w: bad", logic.ErrInvalidInput), http.StatusBadRequest, CodeInvalidInput},
		{fmt.Errorf("load: %w", logic.ErrNotFound), http.StatusNotFound, CodeNotFound},
		{fmt.Errorf("%w: 1", logic.ErrRequestClosed), http.StatusConflict, CodeRequestClosed},
		{fmt.Errorf("%w: 1", logic.ErrConflict), http.StatusConflict, CodeConflict},
		{fmt.Errorf("%w: down", logic.ErrStoreUnavailable), http.StatusServiceUnavailable, CodeStoreUnavailable},
		{errors.New("boom"), http.StatusInternalServerError, CodeInternal},
	}
	for _, tt := range tests {
		status, code := StatusFor(tt.err)
		if status != tt.wantStatus || code != tt.wantCode {
			t.Fatalf("%v: expected %d %s, got %d %s", tt.err, tt.wantStatus, tt.wantCode, status, code)
		}
	}
}

func TestCreateDonationRequestAliases(t *testing.T) {
	var req CreateDonationRequest
	if err := json.Unmarshal([]byte(`{"fundingRequestId":7,"donorName":"Asha","amount":"2.50"}`), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if req.RequestID() != 7 || req.Donor() != "Asha" {
		t.Fatalf("camelCase fields not resolved: %+v", req)
	}

	req = CreateDonationRequest{}
	if err := json.Unmarshal([]byte(`{"funding_request_id":8,"fundingRequestId":9,"donor_name":"Kiran","amount":1}`), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if req.RequestID() != 8 || req.Donor() != "Kiran" {
		t.Fatalf("snake_case fields should win: %+v", req)
	}
}
