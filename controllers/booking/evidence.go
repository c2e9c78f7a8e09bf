package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"venue-booking/logger"
	bookingModel "venue-booking/models/booking"
	receiptModel "venue-booking/models/receipt"
	receiptService "venue-booking/services/receipt"
	"venue-booking/services/upload"
	"venue-booking/types"
	"venue-booking/utils"

	"github.com/gofiber/fiber/v2"
	"google.golang.org/genai"
)

// UploadEvidence attaches a proof-of-payment document to an approved booking.
// One document per booking; re-uploads are rejected. Image evidence is also
// run through the Gemini receipt parser so the transaction details can be
// pre-filled for the administrator.
func (h *BookingController) UploadEvidence(c *fiber.Ctx) error {
	startTime := time.Now()

	account, err := utils.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Message: "Unauthorized",
			Status:  fiber.StatusUnauthorized,
		})
	}

	b, errResp := h.loadBookingByCode(c)
	if errResp != nil {
		return errResp(c)
	}

	if !h.Policy.CanActOnBooking(account, b) {
		return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
			Message: "Only the booking owner can upload payment evidence",
			Status:  fiber.StatusForbidden,
		})
	}

	if !b.Status.CanAttachEvidence() {
		return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
			Message: "Payment evidence can only be uploaded for approved bookings (current status: " + b.Status.String() + ")",
			Status:  fiber.StatusConflict,
		})
	}

	if !b.RequiresPayment() {
		return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
			Message: "This booking has no payable cost; no evidence is required",
			Status:  fiber.StatusConflict,
		})
	}

	if b.HasEvidence() {
		return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
			Message: "Payment evidence has already been uploaded for this booking",
			Status:  fiber.StatusConflict,
		})
	}

	fileHeader, err := c.FormFile("evidence")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: "No evidence file provided. Use the 'evidence' form field.",
			Status:  fiber.StatusBadRequest,
		})
	}

	if err := upload.ValidateEvidenceFile(fileHeader); err != nil {
		status := fiber.StatusBadRequest
		if errors.Is(err, upload.ErrFileTooLarge) {
			status = fiber.StatusRequestEntityTooLarge
		}
		return c.Status(status).JSON(types.ApiResponse{
			Message: err.Error(),
			Status:  status,
		})
	}

	src, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open evidence file", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to process uploaded file",
			Status:  fiber.StatusInternalServerError,
		})
	}
	defer src.Close()

	fileBytes, err := io.ReadAll(src)
	if err != nil {
		logger.Error("Failed to read evidence file", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to read file content",
			Status:  fiber.StatusInternalServerError,
		})
	}

	path, err := upload.SaveFile("uploaded_evidence", b.BookingCode, fileHeader.Filename, fileBytes)
	if err != nil {
		logger.Error("Failed to store evidence file", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to store uploaded file",
			Status:  fiber.StatusInternalServerError,
		})
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	b.EvidencePath = &path
	b.EvidenceMimeType = &mimeType
	b.UpdatedBy = account.Uuid
	if err := h.DB.Save(b).Error; err != nil {
		logger.Error("Failed to attach evidence to booking", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to attach evidence",
			Status:  fiber.StatusInternalServerError,
		})
	}

	responseData := fiber.Map{
		"booking_code":  b.BookingCode,
		"evidence_path": path,
	}

	// Image receipts get OCR'd so the transaction reference can be pre-filled.
	if upload.IsImage(mimeType) {
		service := receiptService.NewReceiptService(h.DB)
		requestID := service.GenerateRequestID()

		if _, err := service.CreateInitialRequest(c, requestID, b.ID, fileHeader.Filename, fileHeader.Size, mimeType); err != nil {
			logger.Error(fmt.Sprintf("Failed to create receipt parse request %s", requestID), err)
		} else {
			service.SaveFileAsync(requestID, fileBytes, fileHeader.Filename)

			result, err := h.parseReceiptWithGemini(fileBytes, mimeType)
			if err != nil {
				processingTime := time.Since(startTime).Milliseconds()
				service.SaveFailureResultAsync(requestID, fmt.Sprintf("Gemini parsing failed: %s", err.Error()), processingTime)
				logger.Error(fmt.Sprintf("Failed to parse receipt with Gemini for request %s", requestID), err)
				responseData["receipt_parse"] = fiber.Map{
					"request_id": requestID,
					"status":     "failed",
				}
			} else {
				processingTime := time.Since(startTime).Milliseconds()
				result.ProcessingTimeMs = processingTime
				result.RequestID = requestID
				service.SaveSuccessResultAsync(requestID, result)

				logger.Success(fmt.Sprintf("Receipt parsed successfully in %dms, Request ID: %s", processingTime, requestID))
				responseData["receipt_parse"] = result
			}
		}
	}

	logger.Success("Evidence uploaded for booking: " + b.BookingCode)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Payment evidence uploaded successfully",
		Status:  fiber.StatusOK,
		Data:    responseData,
	})
}

// ReceiptParseStatus returns the state of a receipt parse request. Used by the
// client to poll for OCR results.
func (h *BookingController) ReceiptParseStatus(c *fiber.Ctx) error {
	account, err := utils.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Message: "Unauthorized",
			Status:  fiber.StatusUnauthorized,
		})
	}

	requestID := c.Params("request_id")
	service := receiptService.NewReceiptService(h.DB)
	request, err := service.GetRequestByID(requestID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Message: "Receipt parse request not found",
			Status:  fiber.StatusNotFound,
		})
	}

	var b bookingModel.Booking
	if err := h.DB.First(&b, request.BookingID).Error; err != nil {
		logger.Error("Failed to fetch booking for receipt request", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to fetch booking",
			Status:  fiber.StatusInternalServerError,
		})
	}
	if !h.Policy.CanViewBooking(account, &b) {
		return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
			Message: "You do not have access to this receipt",
			Status:  fiber.StatusForbidden,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Receipt parse request fetched successfully",
		Status:  fiber.StatusOK,
		Data:    request,
	})
}

// parseReceiptWithGemini extracts structured payment data from a receipt image.
func (h *BookingController) parseReceiptWithGemini(imageBytes []byte, mimeType string) (*receiptModel.ReceiptParseResponse, error) {
	ctx := context.Background()

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not found in environment variables")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	prompt := `Analyze this bank payment receipt image and extract the following information. Return ONLY valid JSON.

			Extract these fields from the image. If a field is missing or unclear, use an empty string (or 0 for amount).

			Required JSON format:
			{
			"transaction_id": string,   // Bank transaction/reference number
			"amount": number,           // Amount paid
			"paid_date": string,        // Payment date as printed, e.g. "2026-08-30"
			"payer_name": string        // Name of the person who paid
			}`

	content := &genai.Content{
		Parts: []*genai.Part{
			&genai.Part{Text: prompt},
			&genai.Part{InlineData: &genai.Blob{
				MIMEType: mimeType,
				Data:     imageBytes,
			}},
		},
	}

	result, err := client.Models.GenerateContent(
		ctx,
		"gemini-2.5-flash-lite",
		[]*genai.Content{content},
		&genai.GenerateContentConfig{
			Temperature: genai.Ptr(float32(0.1)),
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content with OCR: %w", err)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no content generated by OCR")
	}

	responseText := result.Candidates[0].Content.Parts[0].Text
	if responseText == "" {
		return nil, fmt.Errorf("empty response from OCR")
	}

	jsonText := extractJSONFromMarkdown(responseText)

	var parsedData receiptModel.ReceiptParseResponse
	if err := json.Unmarshal([]byte(jsonText), &parsedData); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w, response: %s", err, jsonText)
	}

	return &parsedData, nil
}

// extractJSONFromMarkdown extracts JSON content from markdown code blocks
func extractJSONFromMarkdown(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") && strings.HasSuffix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
		return strings.TrimSpace(text)
	}

	if strings.HasPrefix(text, "```") && strings.HasSuffix(text, "```") {
		lines := strings.Split(text, "\n")
		if len(lines) > 1 {
			jsonLines := lines[1 : len(lines)-1]
			return strings.Join(jsonLines, "\n")
		}
	}

	return text
}
