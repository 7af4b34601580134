package job

import (
	"time"

	"github.com/gobuffalo/buffalo/worker"
	"github.com/gobuffalo/pop/v6"

	"github.com/motorsure/motorsure-api/log"
	"github.com/motorsure/motorsure-api/models"
)

// expirePoliciesHandler is the Worker handler that expires active policies
// whose end date has passed
func expirePoliciesHandler(_ worker.Args) error {
	defer resubmitExpireJob()

	var expired int
	err := models.DB.Transaction(func(tx *pop.Connection) error {
		var policies models.Policies
		var err error
		expired, err = policies.ExpireEnded(tx, time.Now().UTC())
		return err
	})
	if err != nil {
		return err
	}

	log.Infof("expired %d policies", expired)
	return nil
}

func resubmitExpireJob() {
	// Run twice a day, in case it errors out
	delay := time.Hour * 12

	if err := SubmitDelayed(ExpirePolicies, delay, map[string]interface{}{}); err != nil {
		log.Errorf("error resubmitting expirePoliciesHandler: %s", err)
	}
}
