package receipt

import (
	"time"

	"gorm.io/gorm"
)

// ReceiptParseRequest represents a payment receipt parsing request
type ReceiptParseRequest struct {
	ID               uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	RequestID        string `json:"request_id" gorm:"type:varchar(24);uniqueIndex;not null"` // 24 character unique ID
	BookingID        uint   `json:"booking_id" gorm:"index;not null"`
	OriginalFileName string `json:"original_file_name" gorm:"type:varchar(255);not null"`
	SavedFileName    string `json:"saved_file_name" gorm:"type:varchar(255)"`
	FileHash         string `json:"file_hash" gorm:"type:varchar(128);index"` // SHA256 hash
	FilePath         string `json:"file_path" gorm:"type:varchar(500)"`
	FileSize         int64  `json:"file_size" gorm:"not null"`
	MimeType         string `json:"mime_type" gorm:"type:varchar(100);not null"`
	Status           string `json:"status" gorm:"type:varchar(50);not null;default:'processing';index"` // processing, success, failed
	ProcessingTimeMs int64  `json:"processing_time_ms" gorm:"default:0"`

	// Parsed data fields
	TransactionID string  `json:"transaction_id" gorm:"type:varchar(100);index;default:''"`
	Amount        float64 `json:"amount" gorm:"default:0"`
	PaidDate      string  `json:"paid_date" gorm:"type:varchar(20);default:''"`
	PayerName     string  `json:"payer_name" gorm:"type:varchar(255);default:''"`

	// Error information
	ErrorMessage string `json:"error_message" gorm:"type:text;default:''"`

	// Metadata
	IPAddress string `json:"ip_address" gorm:"type:varchar(45);index;default:''"` // Support IPv6
	UserAgent string `json:"user_agent" gorm:"type:text;default:''"`

	// Timestamps
	CreatedAt time.Time      `json:"created_at" gorm:"index"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

// TableName returns the table name for ReceiptParseRequest
func (ReceiptParseRequest) TableName() string {
	return "receipt_parse_requests"
}

// BeforeCreate hook to set default values
func (r *ReceiptParseRequest) BeforeCreate(tx *gorm.DB) error {
	if r.Status == "" {
		r.Status = "processing"
	}
	return nil
}

// IsProcessing checks if the request is still processing
func (r *ReceiptParseRequest) IsProcessing() bool {
	return r.Status == "processing"
}

// IsSuccess checks if the request was successful
func (r *ReceiptParseRequest) IsSuccess() bool {
	return r.Status == "success"
}

// IsFailed checks if the request failed
func (r *ReceiptParseRequest) IsFailed() bool {
	return r.Status == "failed"
}

// MarkAsSuccess marks the request as successful and saves parsed data
func (r *ReceiptParseRequest) MarkAsSuccess(db *gorm.DB, parsed *ReceiptParseResponse) error {
	r.Status = "success"
	r.TransactionID = parsed.TransactionID
	r.Amount = parsed.Amount
	r.PaidDate = parsed.PaidDate
	r.PayerName = parsed.PayerName
	r.ProcessingTimeMs = parsed.ProcessingTimeMs

	return db.Save(r).Error
}

// MarkAsFailed marks the request as failed with error message
func (r *ReceiptParseRequest) MarkAsFailed(db *gorm.DB, errorMsg string, processingTime int64) error {
	r.Status = "failed"
	r.ErrorMessage = errorMsg
	r.ProcessingTimeMs = processingTime

	return db.Save(r).Error
}

// ReceiptParseResponse represents the parsed data response
type ReceiptParseResponse struct {
	RequestID        string  `json:"request_id"`
	TransactionID    string  `json:"transaction_id"`
	Amount           float64 `json:"amount"`
	PaidDate         string  `json:"paid_date"`
	PayerName        string  `json:"payer_name"`
	ProcessingTimeMs int64   `json:"processing_time_ms"`
}
