package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	types "github.com/openvp/showcase-backend/internal/domain"
	"github.com/openvp/showcase-backend/internal/platform/envutil"
	"github.com/openvp/showcase-backend/internal/platform/logger"
)

type Service struct {
	db     *gorm.DB
	log    *logger.Logger
	driver string
}

// New connects using env config. DB_DRIVER=sqlite selects an embedded
// database for local development; postgres is the default.
func New(log *logger.Logger) (*Service, error) {
	serviceLog := log.With("service", "DatabaseService")
	driver := envutil.String("DB_DRIVER", "postgres")

	var (
		db  *gorm.DB
		err error
	)
	switch driver {
	case "sqlite":
		path := envutil.String("SQLITE_PATH", "showcase.db")
		log.Info("Connecting to sqlite...", "path", path)
		db, err = gorm.Open(sqlite.Open(path), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("connect to sqlite: %w", err)
		}
	default:
		driver = "postgres"
		host := envutil.String("POSTGRES_HOST", "localhost")
		port := envutil.String("POSTGRES_PORT", "5432")
		user := envutil.String("POSTGRES_USER", "postgres")
		password := envutil.String("POSTGRES_PASSWORD", "")
		name := envutil.String("POSTGRES_NAME", "showcase")

		dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, name)
		log.Info("Connecting to Postgres...", "host", host, "db", name)
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			DisableForeignKeyConstraintWhenMigrating: true,
		})
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
			return nil, fmt.Errorf("enable uuid-ossp extension: %w", err)
		}
	}

	return &Service{db: db, log: serviceLog, driver: driver}, nil
}

func (s *Service) AutoMigrateAll() error {
	s.log.Info("Auto migrating tables...")
	err := s.db.AutoMigrate(
		&types.Asset{},
		&types.Tenant{},
		&types.User{},
		&types.Persona{},

		&types.CredentialSchema{},
		&types.CredentialAttribute{},
		&types.CredentialDefinition{},
		&types.CredentialRevocation{},
		&types.Issuer{},
		&types.RelyingParty{},
		&types.IssuerCredentialDefinition{},
		&types.IssuerCredentialSchema{},
		&types.RelyingPartyCredentialDefinition{},

		&types.Scenario{},
		&types.ScenarioPersona{},
		&types.Step{},
		&types.StepAction{},

		&types.Showcase{},
		&types.ShowcasePersona{},
		&types.ShowcaseScenario{},
		&types.ShowcaseCredentialDefinition{},
	)
	if err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	if s.driver != "postgres" {
		// sqlite dev mode runs without the cascade constraints below.
		return nil
	}
	s.log.Info("Configuring foreign key relationships...")
	return ApplyForeignKeys(s.db)
}

type foreignKey struct {
	table, name, column, refTable, onDelete string
}

// ApplyForeignKeys installs the cascade constraints the schema relies on,
// dropping and recreating each so repeated migrations stay idempotent.
func ApplyForeignKeys(db *gorm.DB) error {
	fks := []foreignKey{
		{"showcase", "fk_showcase_tenant_id", "tenant_id", "tenant", "CASCADE"},
		{"showcase_persona", "fk_showcase_persona_showcase_id", "showcase_id", "showcase", "CASCADE"},
		{"showcase_persona", "fk_showcase_persona_persona_id", "persona_id", "persona", "CASCADE"},
		{"showcase_scenario", "fk_showcase_scenario_showcase_id", "showcase_id", "showcase", "CASCADE"},
		{"showcase_scenario", "fk_showcase_scenario_scenario_id", "scenario_id", "scenario", "CASCADE"},
		{"showcase_credential_definition", "fk_showcase_cred_def_showcase_id", "showcase_id", "showcase", "CASCADE"},
		{"showcase_credential_definition", "fk_showcase_cred_def_cred_def_id", "credential_definition_id", "credential_definition", "CASCADE"},
		{"scenario_persona", "fk_scenario_persona_scenario_id", "scenario_id", "scenario", "CASCADE"},
		{"scenario_persona", "fk_scenario_persona_persona_id", "persona_id", "persona", "CASCADE"},
		{"step", "fk_step_scenario_id", "scenario_id", "scenario", "CASCADE"},
		{"step_action", "fk_step_action_step_id", "step_id", "step", "CASCADE"},
		{"credential_attribute", "fk_credential_attribute_schema_id", "credential_schema_id", "credential_schema", "CASCADE"},
		{"credential_definition", "fk_credential_definition_schema_id", "credential_schema_id", "credential_schema", "CASCADE"},
		{"credential_revocation", "fk_credential_revocation_def_id", "credential_definition_id", "credential_definition", "CASCADE"},
		{"issuer_credential_definition", "fk_issuer_cred_def_issuer_id", "issuer_id", "issuer", "CASCADE"},
		{"issuer_credential_definition", "fk_issuer_cred_def_cred_def_id", "credential_definition_id", "credential_definition", "CASCADE"},
		{"issuer_credential_schema", "fk_issuer_cred_schema_issuer_id", "issuer_id", "issuer", "CASCADE"},
		{"issuer_credential_schema", "fk_issuer_cred_schema_schema_id", "credential_schema_id", "credential_schema", "CASCADE"},
		{"relying_party_credential_definition", "fk_rp_cred_def_rp_id", "relying_party_id", "relying_party", "CASCADE"},
		{"relying_party_credential_definition", "fk_rp_cred_def_cred_def_id", "credential_definition_id", "credential_definition", "CASCADE"},
	}
	for _, fk := range fks {
		drop := fmt.Sprintf(`ALTER TABLE %q DROP CONSTRAINT IF EXISTS %q`, fk.table, fk.name)
		if err := db.Exec(drop).Error; err != nil {
			return fmt.Errorf("drop %s: %w", fk.name, err)
		}
		add := fmt.Sprintf(
			`ALTER TABLE %q ADD CONSTRAINT %q FOREIGN KEY (%q) REFERENCES %q("id") ON DELETE %s`,
			fk.table, fk.name, fk.column, fk.refTable, fk.onDelete,
		)
		if err := db.Exec(add).Error; err != nil {
			return fmt.Errorf("add %s: %w", fk.name, err)
		}
	}
	return nil
}

func (s *Service) DB() *gorm.DB {
	return s.db
}
