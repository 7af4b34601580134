package api

const (
	CategoryDatabase     = ErrorCategory("Database")
	CategoryUser         = ErrorCategory("User") // used for errors related to user input, validation, etc.
	CategoryForbidden    = ErrorCategory("Forbidden")
	CategoryUnauthorized = ErrorCategory("Unauthorized")
	CategoryNotFound     = ErrorCategory("NotFound")
	CategoryConflict     = ErrorCategory("Conflict") // concurrent-write invariant violations, retryable by resubmission
	CategoryInternal     = ErrorCategory("Internal") // used for internal server errors, not related to bad user input
)

const (
	// General

	ErrorCreateFailure         = ErrorKey("ErrorCreateFailure")
	ErrorDestroyFailure        = ErrorKey("ErrorDestroyFailure")
	ErrorGenericInternalServer = ErrorKey("ErrorGenericInternalServer")
	ErrorForeignKeyViolation   = ErrorKey("ErrorForeignKeyViolation")
	ErrorInvalidRequestBody    = ErrorKey("ErrorInvalidRequestBody")
	ErrorMustBeAValidUUID      = ErrorKey("ErrorMustBeAValidUUID")
	ErrorNoRows                = ErrorKey("ErrorNoRows")
	ErrorNotAuthorized         = ErrorKey("ErrorNotAuthorized")
	ErrorQueryFailure          = ErrorKey("ErrorQueryFailure")
	ErrorSaveFailure           = ErrorKey("ErrorSaveFailure")
	ErrorTransactionNotFound   = ErrorKey("ErrorTransactionNotFound")
	ErrorUniqueKeyViolation    = ErrorKey("ErrorUniqueKeyViolation")
	ErrorUnknown               = ErrorKey("ErrorUnknown")
	ErrorUpdateFailure         = ErrorKey("ErrorUpdateFailure")
	ErrorValidation            = ErrorKey("ErrorValidation")

	// Authentication
	ErrorCreatingAccessToken = ErrorKey("ErrorCreatingAccessToken")
	ErrorDeletingAccessToken = ErrorKey("ErrorDeletingAccessToken")
	ErrorFindingAccessToken  = ErrorKey("ErrorFindingAccessToken")

	// Authorization
	ErrorInvalidResourceID = ErrorKey("ErrorInvalidResourceID")
	ErrorResourceNotFound  = ErrorKey("ErrorResourceNotFound")

	// User / Customer
	ErrorCustomerProfileNotFound = ErrorKey("ErrorCustomerProfileNotFound")

	// Vehicle
	ErrorVehicleNotOwned      = ErrorKey("ErrorVehicleNotOwned")
	ErrorVehicleMarketValue   = ErrorKey("ErrorVehicleMarketValue")
	ErrorVehicleMissingNumber = ErrorKey("ErrorVehicleMissingNumber")

	// Policy
	ErrorPolicyDateOrder    = ErrorKey("ErrorPolicyDateOrder")
	ErrorPolicyOverlap      = ErrorKey("ErrorPolicyOverlap")
	ErrorPolicyStatus       = ErrorKey("ErrorPolicyStatus")
	ErrorPolicyMissingQuote = ErrorKey("ErrorPolicyMissingQuote")
	ErrorPolicyCoverage     = ErrorKey("ErrorPolicyCoverage")

	// Quotation
	ErrorQuotationAmount = ErrorKey("ErrorQuotationAmount")
	ErrorQuotationStatus = ErrorKey("ErrorQuotationStatus")

	// Claim
	ErrorClaimNotEligible   = ErrorKey("ErrorClaimNotEligible")
	ErrorClaimStatus        = ErrorKey("ErrorClaimStatus")
	ErrorClaimInvalidAction = ErrorKey("ErrorClaimInvalidAction")
	ErrorClaimAssessorInput = ErrorKey("ErrorClaimAssessorInput")

	// Claim document
	ErrorClaimDocumentType   = ErrorKey("ErrorClaimDocumentType")
	ErrorUnableToStoreFile   = ErrorKey("ErrorUnableToStoreFile")
	ErrorReceivingFile       = ErrorKey("ErrorReceivingFile")
	ErrorStoreFileTooLarge   = ErrorKey("ErrorStoreFileTooLarge")
	ErrorStoreFileBadContent = ErrorKey("ErrorStoreFileBadContent")

	// Notification
	ErrorNotificationRecipient = ErrorKey("ErrorNotificationRecipient")
)
