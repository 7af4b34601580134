package grifts

import (
	"fmt"
	"time"

	"github.com/gobuffalo/grift/grift"
	"github.com/gobuffalo/pop/v6"

	"github.com/motorsure/motorsure-api/api"
	"github.com/motorsure/motorsure-api/models"
)

var vehicleCategoryNames = []string{
	"motorcycles",
	"light_motor",
	"minibuses",
	"buses",
	"heavy_vehicles",
	"haulage_trucks",
}

var _ = grift.Namespace("db", func() {
	grift.Desc("seed", "Seeds a database")
	_ = grift.Add("seed", func(c *grift.Context) error {
		countUsers := models.Users{}
		count, err := models.DB.Count(countUsers)
		if err != nil {
			return err
		}

		if count > 1 {
			fmt.Printf("\nINFO: It appears that the grifts have already been run, "+
				"since there are already %v users.\n", count)
			return nil
		}

		return models.DB.Transaction(func(tx *pop.Connection) error {
			if err := seedVehicleCategories(tx); err != nil {
				return err
			}

			if err := seedCoverages(tx); err != nil {
				return err
			}

			return seedStaffUsers(tx)
		})
	})
})

func seedVehicleCategories(tx *pop.Connection) error {
	for _, name := range vehicleCategoryNames {
		var category models.VehicleCategory
		if err := category.FindByName(tx, name); err == nil {
			continue
		}
		category = models.VehicleCategory{Name: name}
		if err := category.Create(tx); err != nil {
			return fmt.Errorf("error seeding vehicle category %s: %w", name, err)
		}
	}
	fmt.Printf("created %d vehicle categories\n", len(vehicleCategoryNames))
	return nil
}

func seedCoverages(tx *pop.Connection) error {
	coverages := models.Coverages{
		{
			Name:        "Comprehensive Cover",
			Type:        api.CoverageTypeComprehensive,
			Description: "Covers own damage, theft, fire and third-party liability",
		},
		{
			Name:        "Third Party Cover",
			Type:        api.CoverageTypeThirdParty,
			Description: "Covers liability to third parties only",
		},
	}
	for i := range coverages {
		if err := coverages[i].Create(tx); err != nil {
			return fmt.Errorf("error seeding coverage %s: %w", coverages[i].Name, err)
		}
	}
	fmt.Printf("created %d coverage products\n", len(coverages))
	return nil
}

func seedStaffUsers(tx *pop.Connection) error {
	staff := models.Users{
		{
			Email:     "underwriter@motorsure.example.com",
			FirstName: "Ursula",
			LastName:  "Underwriter",
			UserType:  models.UserTypeUnderwriter,
		},
		{
			Email:     "manager@motorsure.example.com",
			FirstName: "Mandla",
			LastName:  "Manager",
			UserType:  models.UserTypeManager,
		},
	}
	for i := range staff {
		staff[i].LastLoginUTC = time.Now().UTC()
		if err := staff[i].Create(tx); err != nil {
			return fmt.Errorf("error seeding user %s: %w", staff[i].Email, err)
		}
	}
	fmt.Printf("created %d staff users\n", len(staff))
	return nil
}
