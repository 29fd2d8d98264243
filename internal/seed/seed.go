package seed

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/gin-gonic/gin/binding"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"estate/internal/model"
	"estate/internal/search"
	"estate/internal/service"
)

// Fixture is the content of a seed file
type Fixture struct {
	Admins     []AdminFixture              `yaml:"admins"`
	Locations  []model.LocationInput       `yaml:"locations"`
	Properties []model.PropertyInput       `yaml:"properties"`
	Contact    *model.ContactSettingsInput `yaml:"contact"`
}

// AdminFixture carries a plaintext password that is hashed on import
type AdminFixture struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

// LoadFixture reads a fixture from a YAML file
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var fixture Fixture
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	return &fixture, nil
}

// Validate applies the same rules as the admin API
func (f *Fixture) Validate() error {
	var errs []error
	for i, loc := range f.Locations {
		if err := binding.Validator.ValidateStruct(loc); err != nil {
			errs = append(errs, fmt.Errorf("locations[%d]: %w", i, err))
		}
	}
	for i, p := range f.Properties {
		if err := binding.Validator.ValidateStruct(p); err != nil {
			errs = append(errs, fmt.Errorf("properties[%d] %q: %w", i, p.Title, err))
		}
	}
	for i, a := range f.Admins {
		if a.Email == "" || a.Password == "" {
			errs = append(errs, fmt.Errorf("admins[%d]: email and password are required", i))
		}
	}
	return errors.Join(errs...)
}

// Services are the write paths a fixture goes through
type Services struct {
	Admin     *service.AdminService
	Search    *service.SearchService
	Locations *service.LocationService
	Contact   *service.ContactService
}

// Result counts what was written
type Result struct {
	Admins     int
	Locations  int
	Properties int
	Contact    bool
}

// Apply writes the fixture. Existing admins are skipped; locations and
// properties are only imported into an empty catalogue so running the seed
// twice does not duplicate listings.
func Apply(ctx context.Context, f *Fixture, svc Services, log zerolog.Logger) (*Result, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	res := &Result{}
	for _, a := range f.Admins {
		if _, err := svc.Admin.CreateAdmin(ctx, a.Email, a.Password); err != nil {
			if errors.Is(err, model.ErrDuplicate) {
				log.Info().Str("email", a.Email).Msg("admin already exists, skipping")
				continue
			}
			return res, fmt.Errorf("failed to create admin %s: %w", a.Email, err)
		}
		res.Admins++
	}

	existingLocations, err := svc.Locations.All(ctx)
	if err != nil {
		return res, err
	}
	if len(existingLocations) == 0 {
		for _, in := range f.Locations {
			if _, err := svc.Locations.Create(ctx, in); err != nil {
				return res, fmt.Errorf("failed to create location %s: %w", in.Name, err)
			}
			res.Locations++
		}
	} else if len(f.Locations) > 0 {
		log.Info().Int("existing", len(existingLocations)).Msg("locations already present, skipping")
	}

	existing, err := svc.Search.AdminSearch(ctx, search.Filter{})
	if err != nil {
		return res, err
	}
	if existing.Total == 0 {
		for _, in := range f.Properties {
			if _, err := svc.Search.CreateProperty(ctx, in); err != nil {
				return res, fmt.Errorf("failed to create property %q: %w", in.Title, err)
			}
			res.Properties++
		}
	} else if len(f.Properties) > 0 {
		log.Info().Int("existing", existing.Total).Msg("properties already present, skipping")
	}

	if f.Contact != nil {
		if _, err := svc.Contact.Update(ctx, *f.Contact); err != nil {
			return res, fmt.Errorf("failed to save contact settings: %w", err)
		}
		res.Contact = true
	}

	return res, nil
}
