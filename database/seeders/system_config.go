package seeders

import (
	"log"

	"auto-repair-site/constants"
	configModel "auto-repair-site/models/config"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeedSystemConfig inserts the default Banadir Main integration settings,
// leaving any key an operator has already written untouched.
func SeedSystemConfig(db *gorm.DB) {
	log.Printf("🔍 Checking Banadir Main integration configuration...")

	for _, kv := range constants.DefaultConfig() {
		row := configModel.SystemConfig{
			ConfigKey:   kv[0],
			ConfigValue: kv[1],
		}
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "config_key"}},
			DoNothing: true,
		}).Create(&row).Error; err != nil {
			log.Printf("Failed to seed config %s: %v", kv[0], err)
		}
	}

	log.Printf("✅ Banadir Main integration configuration seeded")
}
