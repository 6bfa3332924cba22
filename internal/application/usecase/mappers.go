package usecase

import (
	"github.com/jhoicas/Fletes-api/internal/application/dto"
	"github.com/jhoicas/Fletes-api/internal/application/extraction"
	"github.com/jhoicas/Fletes-api/internal/domain/entity"
)

const dateLayout = "2006-01-02"

func entityToVoucherResponse(v *entity.Voucher) *dto.VoucherResponse {
	return &dto.VoucherResponse{
		ID:                   v.ID,
		FileName:             v.FileName,
		SourceKind:           v.SourceKind,
		Status:               v.Status,
		TotalRowsFound:       v.TotalRowsFound,
		ValidRows:            v.ValidRows,
		ExtractionConfidence: v.ExtractionConfidence,
		ErrorMessage:         v.ErrorMessage,
		UploadedBy:           v.UploadedBy,
		CreatedAt:            v.CreatedAt,
		UpdatedAt:            v.UpdatedAt,
	}
}

// ExtractionToResponse representa un resultado de extracción (API y CLI).
func ExtractionToResponse(res *extraction.ExtractionResult) *dto.ExtractionResponse {
	out := &dto.ExtractionResponse{
		CandidateRows: res.CandidateRows,
		ValidRows:     res.ValidRows,
		Confidence:    res.Confidence,
		TierCounts:    res.TierCounts,
		Rows:          make([]dto.ExtractedRowResponse, 0, len(res.Rows)),
		Errors:        validationErrorsToResponse(res.Errors),
	}
	for _, r := range res.Rows {
		out.Rows = append(out.Rows, dto.ExtractedRowResponse{
			SourceLine:   r.SourceLine,
			Tier:         r.Tier,
			Confidence:   r.Confidence,
			Location:     r.Location,
			TicketNumber: r.TicketNumber,
			VehicleCode:  r.VehicleCode,
			Identifier:   r.Identifier(),
			ShipDate:     r.ShipDateISO(),
			HaulRate:     r.HaulRate.String(),
			Quantity:     r.Quantity.String(),
			Amount:       r.Amount.StringFixed(2),
			DocType:      r.DocType,
		})
	}
	return out
}

func validationErrorsToResponse(errs []entity.ValidationError) []dto.ValidationErrorResponse {
	out := make([]dto.ValidationErrorResponse, 0, len(errs))
	for _, e := range errs {
		out = append(out, dto.ValidationErrorResponse{
			RowNumber:     e.RowNumber,
			Field:         e.Field,
			Message:       e.Message,
			OriginalValue: e.OriginalValue,
			Severity:      e.Severity,
		})
	}
	return out
}

func entityToPaymentReportResponse(r *entity.PaymentReport) *dto.PaymentReportResponse {
	return &dto.PaymentReportResponse{
		ID:                r.ID,
		CompanyID:         r.CompanyID,
		VoucherID:         r.VoucherID,
		PaymentNo:         r.PaymentNo,
		PaymentYear:       r.PaymentYear,
		WeekStart:         r.WeekStart.Format(dateLayout),
		WeekEnd:           r.WeekEnd.Format(dateLayout),
		PaymentDate:       r.PaymentDate.Format(dateLayout),
		Subtotal:          r.Subtotal.StringFixed(2),
		CapitalPercentage: r.CapitalPercentage.String(),
		CapitalDeduction:  r.CapitalDeduction.StringFixed(2),
		TotalPayment:      r.TotalPayment.StringFixed(2),
		YTDAmount:         r.YTDAmount.StringFixed(2),
		TotalTrips:        r.TotalTrips,
		CreatedAt:         r.CreatedAt,
	}
}
