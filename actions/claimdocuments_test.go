package actions

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/motorsure/motorsure-api/api"
	"github.com/motorsure/motorsure-api/models"
	"github.com/motorsure/motorsure-api/storage"
)

func (as *ActionSuite) Test_ClaimDocumentsAttachAndList() {
	as.NoError(storage.CreateS3Bucket())

	fixtures := models.CreatePolicyFixtures(as.DB, models.FixturesConfig{
		NumberOfCustomers:   2,
		PoliciesPerCustomer: 1,
		ClaimsPerPolicy:     1,
	})
	owner := fixtures.Users[0]
	stranger := fixtures.Users[1]
	claim := fixtures.Claims[0]

	input := api.ClaimDocumentAttachInput{
		DocumentType: api.ClaimDocumentTypePoliceReport,
		FileName:     "police_report.png",
		ContentType:  "image/png",
		Content:      base64.StdEncoding.EncodeToString([]byte("not really a png")),
	}

	// a claim's documents belong to its policy holder
	res := as.request(stranger, fmt.Sprintf("/claims/%s/documents", claim.ID)).Post(input)
	as.Equal(http.StatusNotFound, res.Code, "body: %s", res.Body.String())

	res = as.request(owner, fmt.Sprintf("/claims/%s/documents", claim.ID)).Post(input)
	body := res.Body.String()
	as.Equal(http.StatusOK, res.Code, "incorrect status code returned, body: %s", body)

	var document api.ClaimDocument
	as.NoError(json.Unmarshal([]byte(body), &document))
	as.Equal(api.ClaimDocumentTypePoliceReport, document.DocumentType)
	as.NotEmpty(document.URL)

	res = as.request(owner, fmt.Sprintf("/claims/%s/documents", claim.ID)).Get()
	body = res.Body.String()
	as.Equal(http.StatusOK, res.Code, "incorrect status code returned, body: %s", body)

	var documents api.ClaimDocuments
	as.NoError(json.Unmarshal([]byte(body), &documents))
	as.Len(documents, 1)
	as.Equal(document.ID, documents[0].ID)
}
