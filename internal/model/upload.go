package model

import "time"

type UploadStatus string

const (
	UploadProcessing UploadStatus = "processing"
	UploadCompleted  UploadStatus = "completed"
	UploadFailed     UploadStatus = "failed"
)

// Terminal reports whether server-side processing has finished.
func (s UploadStatus) Terminal() bool {
	return s == UploadCompleted || s == UploadFailed
}

// UploadSession tracks one uploaded batch file while the server processes its rows.
type UploadSession struct {
	UploadID       string       `json:"uploadId"`
	FileName       string       `json:"fileName"`
	Status         UploadStatus `json:"status"`
	TotalRows      int          `json:"totalRows"`
	ProcessedRows  int          `json:"processedRows"`
	Progress       float64      `json:"progress"`
	ChargedCount   int          `json:"chargedCount"`
	PaymentGateway Gateway      `json:"paymentGateway"`
	Error          string       `json:"error,omitempty"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

// Percent prefers the server's progress figure and falls back to the row counts.
func (u UploadSession) Percent() int {
	if u.Progress > 0 {
		if u.Progress > 100 {
			return 100
		}
		return int(u.Progress)
	}
	if u.TotalRows == 0 {
		if u.Status == UploadCompleted {
			return 100
		}
		return 0
	}
	return u.ProcessedRows * 100 / u.TotalRows
}
