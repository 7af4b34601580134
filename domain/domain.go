package domain

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"regexp"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/gobuffalo/buffalo"
	"github.com/gobuffalo/envy"
	mwi18n "github.com/gobuffalo/mw-i18n/v2"
	"github.com/gofrs/uuid"
	"github.com/kelseyhightower/envconfig"
)

// T is the Buffalo i18n translator
var T *mwi18n.Translator

var extrasLock = sync.RWMutex{}

var AllowedFileUploadTypes = []string{
	"image/gif",
	"image/jpeg",
	"image/png",
	"image/webp",
	"application/pdf",
}

// BuffaloContextType is a custom type used as a value key passed to context.WithValue as per the recommendations
// in the function docs for that function: https://golang.org/pkg/context/#WithValue
type BuffaloContextType string

// BuffaloContext is the key for the call to context.WithValue
const BuffaloContext = BuffaloContextType("BuffaloContext")

// Context keys
const (
	ContextKeyCurrentUser = "current_user"
	ContextKeyExtras      = "extras"
	ContextKeyTx          = "tx"

	EventPayloadID   = "id"
	EventPayloadBody = "body"

	TypeClaim         = "claims"
	TypeClaimDocument = "claim-documents"
	TypeCoverage      = "coverages"
	TypeCustomer      = "customers"
	TypeNotification  = "notifications"
	TypePolicy        = "policies"
	TypeQuotation     = "quotations"
	TypeUser          = "users"
	TypeVehicle       = "vehicles"
)

const (
	EnvDevelopment = "development"
	EnvTest        = "test"

	CurrencyFactor = 100
	DateFormat     = "2006-01-02"
	LocalizedDate  = "2 January 2006"

	MaxFileSize = 1024 * 1024 * 10 // 10 Megabytes

	DurationDay = time.Duration(time.Hour * 24)
)

// Event Kinds
const (
	EventApiPolicyApplied  = "api:policy:applied"
	EventApiPolicyQuoted   = "api:policy:quoted"
	EventApiPolicyApproved = "api:policy:approved"
	EventApiPolicyRejected = "api:policy:rejected"
	EventApiPolicyExpired  = "api:policy:expired"
	EventApiPolicyMessage  = "api:policy:message"

	EventApiQuotationAccepted = "api:quotation:accepted"
	EventApiQuotationDeclined = "api:quotation:declined"

	EventApiClaimSubmitted         = "api:claim:submitted"
	EventApiClaimStatusChanged     = "api:claim:statuschanged"
	EventApiClaimSettled           = "api:claim:settled"
	EventApiClaimDocumentsComplete = "api:claim:documentscomplete"
	EventApiClaimAssessorVisit     = "api:claim:assessorvisit"
)

func getBuffaloContext(ctx context.Context) buffalo.Context {
	bc, ok := ctx.Value(BuffaloContext).(buffalo.Context)
	if ok {
		return bc
	}

	// Doesn't have a BuffaloContext value, so it must be the actual BuffaloContext
	return ctx.(buffalo.Context)
}

// Env Holds the values of environment variables
var Env struct {
	GoEnv                      string `ignored:"true"`
	ApiBaseURL                 string `required:"true" split_words:"true"`
	AccessTokenLifetimeSeconds int    `default:"1166400" split_words:"true"` // 13.5 days
	AppName                    string `default:"Motorsure" split_words:"true"`
	ServerPort                 int    `default:"3000" split_words:"true"`

	ListenerDelayMilliseconds int `default:"1000" split_words:"true"`
	ListenerMaxRetries        int `default:"10" split_words:"true"`

	SessionSecret string `required:"true" split_words:"true"`
	UIURL         string `default:"http://missing.ui.url"`

	AwsRegion          string `split_words:"true"`
	AwsS3Endpoint      string `split_words:"true"`
	AwsS3DisableSSL    bool   `split_words:"true"`
	AwsS3Bucket        string `split_words:"true"`
	AwsAccessKeyID     string `split_words:"true"`
	AwsSecretAccessKey string `split_words:"true"`
	AwsS3ACL           string `default:"private" split_words:"true"`

	AwsS3URLLifeMinutes int `default:"10" split_words:"true"`

	EmailFromAddress string `required:"true" split_words:"true"`
	EmailService     string `default:"ses" split_words:"true"`
	SupportEmail     string `default:"" split_words:"true"`

	// Bank transfer details quoted to customers who accept a quotation
	BankName          string `default:"CBZ" split_words:"true"`
	BankAccountNumber string `default:"020224850175100" split_words:"true"`
	BankBranch        string `default:"Chivhu" split_words:"true"`
}

func init() {
	readEnv()
}

// readEnv loads environment data into `Env`
func readEnv() {
	err := envconfig.Process("", &Env)
	if err != nil {
		log.Fatal(errors.New("error loading env vars: " + err.Error()))
	}

	// Doing this separately to avoid needing two environment variables for the same thing
	Env.GoEnv = envy.Get("GO_ENV", "development")
}

// NewExtra Sets a new key-value pair in the `extras` entry of the context
func NewExtra(ctx context.Context, key string, e interface{}) {
	c := getBuffaloContext(ctx)
	extras := getExtras(c)

	extrasLock.Lock()
	defer extrasLock.Unlock()
	extras[key] = e

	c.Set(ContextKeyExtras, extras)
}

func getExtras(c buffalo.Context) map[string]interface{} {
	extras, _ := c.Value(ContextKeyExtras).(map[string]interface{})
	if extras == nil {
		extras = map[string]interface{}{}
	}

	return extras
}

// GetUUID creates a new, unique version 4 (random) UUID and returns it.
// Errors are ignored.
func GetUUID() uuid.UUID {
	id, _ := uuid.NewV4()
	return id
}

// EmailFromAddress combines a name with the configured from address for use in an email From header. If name is nil,
// only the App Name will be used.
func EmailFromAddress(name *string) string {
	addr := Env.AppName + " <" + Env.EmailFromAddress + ">"
	if name != nil {
		addr = *name + " via " + addr
	}
	return addr
}

// PaymentInstructions renders the bank transfer details a customer needs to
// pay an accepted quotation, with the quotation reference as the transfer
// narration.
func PaymentInstructions(reference string) string {
	return fmt.Sprintf("Pay by bank transfer to %s account %s (%s branch), reference %s",
		Env.BankName, Env.BankAccountNumber, Env.BankBranch, reference)
}

// GetBearerTokenFromRequest obtains the token from an Authorization header beginning
// with "Bearer". If not found, an empty string is returned.
func GetBearerTokenFromRequest(r *http.Request) string {
	authorizationHeader := r.Header.Get("Authorization")
	if authorizationHeader == "" {
		return ""
	}

	re := regexp.MustCompile(`^(?i)Bearer (.*)$`)
	matches := re.FindSubmatch([]byte(authorizationHeader))
	if len(matches) < 2 {
		return ""
	}

	return string(matches[1])
}

// IsOtherThanNoRows returns false if the error is nil or is just reporting that there
// were no rows in the result set for a sql query.
func IsOtherThanNoRows(err error) bool {
	if err == nil {
		return false
	}

	if strings.Contains(err.Error(), sql.ErrNoRows.Error()) {
		return false
	}

	return true
}

func MergeExtras(extras []map[string]interface{}) map[string]interface{} {
	allExtras := map[string]interface{}{}

	if len(extras) == 1 {
		return extras[0]
	}

	for _, e := range extras {
		for k, v := range e {
			allExtras[k] = v
		}
	}

	return allExtras
}

// IsStringInSlice iterates over a slice of strings, looking for the given
// string. If found, true is returned. Otherwise, false is returned.
func IsStringInSlice(needle string, haystack []string) bool {
	for _, hs := range haystack {
		if needle == hs {
			return true
		}
	}

	return false
}

func RandomString(n int, includeLetters string) string {
	rand.Seed(time.Now().UnixNano())
	if includeLetters == "" {
		includeLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	}
	letters := []rune(includeLetters)
	b := make([]rune, n)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))] // #nosec G404
	}
	return string(b)
}

// GetFunctionName provides the filename, line number, and function name of the caller, skipping the top `skip`
// functions on the stack.
func GetFunctionName(skip int) string {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "?"
	}

	fn := runtime.FuncForPC(pc)
	return fmt.Sprintf("%s:%d %s", file, line, fn.Name())
}
