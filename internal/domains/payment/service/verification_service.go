package service

import (
	"context"

	"sportify-backend/internal/domains/payment/gateway/razorpay"
	"sportify-backend/internal/domains/payment/model"
	repo "sportify-backend/internal/domains/payment/repository"
	"sportify-backend/pkg/logger"
)

// =====================================================
// VERIFICATION SERVICE IMPLEMENTATION
// =====================================================

type verificationService struct {
	secret       string
	issued       repo.IssuedOrderRepository
	checkLinkage bool
}

// NewVerificationService verifies checkout signatures with secret. When
// checkLinkage is set, a valid signature also needs an order id recorded in issued.
func NewVerificationService(secret string, issued repo.IssuedOrderRepository, checkLinkage bool) VerificationService {
	return &verificationService{
		secret:       secret,
		issued:       issued,
		checkLinkage: checkLinkage,
	}
}

func (s *verificationService) Configured() bool {
	return s.secret != ""
}

func (s *verificationService) Verify(ctx context.Context, req model.VerificationRequest) model.VerificationResult {
	if !s.Configured() {
		logger.Error("payment verification rejected", model.ErrMissingSecret)
		return model.InternalError(model.ReasonConfiguration, model.ErrMissingSecret)
	}

	if err := req.Validate(); err != nil {
		logger.Warn("malformed verification request", map[string]interface{}{"error": err.Error()})
		return model.Mismatch(model.ReasonInvalidRequest)
	}

	if !razorpay.VerifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature, s.secret) {
		logger.Warn("payment signature mismatch", map[string]interface{}{
			"order_id":   req.RazorpayOrderID,
			"payment_id": req.RazorpayPaymentID,
		})
		return model.Mismatch(model.ReasonSignatureMismatch)
	}

	if s.checkLinkage {
		if s.issued == nil {
			return model.InternalError(model.ReasonConfiguration, model.ErrRegistryUnavailable)
		}
		known, err := s.issued.Exists(ctx, req.RazorpayOrderID)
		if err != nil {
			logger.Error("issued order lookup failed", err)
			return model.InternalError(model.ReasonInternal, err)
		}
		if !known {
			logger.Warn("verified payment for unknown order", map[string]interface{}{
				"order_id":   req.RazorpayOrderID,
				"payment_id": req.RazorpayPaymentID,
			})
			return model.Mismatch(model.ReasonUnknownOrder)
		}
	}

	logger.Info("payment verified", map[string]interface{}{
		"order_id":   req.RazorpayOrderID,
		"payment_id": req.RazorpayPaymentID,
	})
	return model.Verified()
}
