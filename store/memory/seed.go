package memory

import (
	"io/ioutil"

	"github.com/google/uuid"
	"gopkg.in/yaml.v2"

	"github.com/fusex/medevac-api/schema"
)

// Seed is the directory data a memory store starts with.
type Seed struct {
	Regions []struct {
		ID   string `yaml:"id"`
		Name string `yaml:"name"`
	} `yaml:"regions"`
	Organizations []struct {
		ID       string `yaml:"id"`
		Name     string `yaml:"name"`
		RegionID string `yaml:"region_id"`
	} `yaml:"organizations"`
	Users []struct {
		ID             string `yaml:"id"`
		Name           string `yaml:"name"`
		Email          string `yaml:"email"`
		Role           string `yaml:"role"`
		OrganizationID string `yaml:"organization_id"`
		RegionID       string `yaml:"region_id"`
	} `yaml:"users"`
}

// LoadSeed reads a YAML seed file into s.
func (s *Store) LoadSeed(file string) error {
	data, err := ioutil.ReadFile(file)
	if err != nil {
		return err
	}

	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return err
	}
	return s.Apply(seed)
}

func (s *Store) Apply(seed Seed) error {
	for _, r := range seed.Regions {
		s.AddRegion(schema.Region{ID: r.ID, Name: r.Name})
	}
	for _, o := range seed.Organizations {
		s.AddOrganization(schema.Organization{ID: o.ID, Name: o.Name, RegionID: o.RegionID})
	}
	for _, u := range seed.Users {
		id, err := uuid.Parse(u.ID)
		if err != nil {
			return err
		}
		user := schema.User{ID: id, Name: u.Name, Email: u.Email, Role: schema.Role(u.Role)}
		if u.OrganizationID != "" {
			orgID := u.OrganizationID
			user.OrganizationID = &orgID
		}
		if u.RegionID != "" {
			regionID := u.RegionID
			user.RegionID = &regionID
		}
		s.AddUser(user)
	}
	return nil
}
