package models

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gobuffalo/validate/v3"

	"github.com/motorsure/motorsure-api/api"
)

// Model validation tool
var mValidate *validator.Validate

var fieldValidators = map[string]func(validator.FieldLevel) bool{
	"userType":          validateUserType,
	"policyStatus":      validatePolicyStatus,
	"coverageType":      validateCoverageType,
	"paymentTerm":       validatePaymentTerm,
	"quotationStatus":   validateQuotationStatus,
	"claimStatus":       validateClaimStatus,
	"claimDocumentType": validateClaimDocumentType,
	"notificationType":  validateNotificationType,
}

func validateModel(m interface{}) *validate.Errors {
	vErrs := validate.NewErrors()

	if err := mValidate.Struct(m); err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			vErrs.Add(err.StructNamespace(), err.Error())
		}
	}
	return vErrs
}

// flattenPopErrors - pop validation errors are complex structures, this flattens them to a simple string
func flattenPopErrors(popErrs *validate.Errors) string {
	var msgs []string
	for key, val := range popErrs.Errors {
		msgs = append(msgs, fmt.Sprintf("%s: %s", key, strings.Join(val, ", ")))
	}
	msg := strings.Join(msgs, " |")
	return msg
}

func validateUserType(field validator.FieldLevel) bool {
	if value, ok := field.Field().Interface().(UserType); ok {
		_, valid := validUserTypes[value]
		return valid
	}
	return false
}

func validatePolicyStatus(field validator.FieldLevel) bool {
	if value, ok := field.Field().Interface().(api.PolicyStatus); ok {
		_, valid := ValidPolicyStatus[value]
		return valid
	}
	return false
}

func validateCoverageType(field validator.FieldLevel) bool {
	if value, ok := field.Field().Interface().(api.CoverageType); ok {
		_, valid := ValidCoverageTypes[value]
		return valid
	}
	return false
}

func validatePaymentTerm(field validator.FieldLevel) bool {
	if value, ok := field.Field().Interface().(api.PaymentTerm); ok {
		_, valid := ValidPaymentTerms[value]
		return valid
	}
	return false
}

func validateQuotationStatus(field validator.FieldLevel) bool {
	if value, ok := field.Field().Interface().(api.QuotationStatus); ok {
		_, valid := ValidQuotationStatus[value]
		return valid
	}
	return false
}

func validateClaimStatus(field validator.FieldLevel) bool {
	if value, ok := field.Field().Interface().(api.ClaimStatus); ok {
		_, valid := ValidClaimStatus[value]
		return valid
	}
	return false
}

func validateClaimDocumentType(field validator.FieldLevel) bool {
	if value, ok := field.Field().Interface().(api.ClaimDocumentType); ok {
		_, valid := ValidClaimDocumentTypes[value]
		return valid
	}
	return false
}

func validateNotificationType(field validator.FieldLevel) bool {
	if value, ok := field.Field().Interface().(api.NotificationType); ok {
		_, valid := ValidNotificationTypes[value]
		return valid
	}
	return false
}

func policyStructLevelValidation(sl validator.StructLevel) {
	policy, ok := sl.Current().Interface().(Policy)
	if !ok {
		panic("policyStructLevelValidation registered to a type other than Policy")
	}

	if policy.EndDate.Before(policy.StartDate) {
		sl.ReportError(policy.EndDate, "end_date", "EndDate", "end_date_not_before_start_date", "")
	}
}

func quotationStructLevelValidation(sl validator.StructLevel) {
	quotation, ok := sl.Current().Interface().(Quotation)
	if !ok {
		panic("quotationStructLevelValidation registered to a type other than Quotation")
	}

	if quotation.Premium <= 0 {
		sl.ReportError(quotation.Premium, "premium", "Premium", "premium_positive", "")
	}

	if quotation.CoverageAmount <= 0 {
		sl.ReportError(quotation.CoverageAmount, "coverage_amount", "CoverageAmount", "coverage_amount_positive", "")
	}
}

func claimStructLevelValidation(sl validator.StructLevel) {
	claim, ok := sl.Current().Interface().(Claim)
	if !ok {
		panic("claimStructLevelValidation registered to a type other than Claim")
	}

	switch claim.Status {
	case api.ClaimStatusApproved, api.ClaimStatusSettled:
		if claim.ApprovedAmount < 0 {
			sl.ReportError(claim.ApprovedAmount, "approved_amount", "ApprovedAmount", "approved_amount_not_negative", "")
		}
		if !claim.ProcessedByID.Valid {
			sl.ReportError(claim.Status, "processed_by_id", "ProcessedByID", "processor_required", "")
		}
	case api.ClaimStatusRejected:
		if !claim.ProcessedByID.Valid {
			sl.ReportError(claim.Status, "processed_by_id", "ProcessedByID", "processor_required", "")
		}
	}
}

func notificationStructLevelValidation(sl validator.StructLevel) {
	notification, ok := sl.Current().Interface().(Notification)
	if !ok {
		panic("notificationStructLevelValidation registered to a type other than Notification")
	}

	if notification.RecipientID.IsNil() {
		sl.ReportError(notification.RecipientID, "recipient_id", "RecipientID", "recipient_required", "")
	}
}
