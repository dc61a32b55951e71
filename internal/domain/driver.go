package domain

import (
	"strings"
	"unicode"
)

// Bounds for driver fields.
const (
	MinPersonnelNumberLen = 3
	MaxPersonnelNumberLen = 20
	MinDriverNameLen      = 5
	MaxDriverNameLen      = 100
	MinDrivingAge         = 18
	MaxDrivingAge         = 70
	MaxExperienceYears    = 50
)

// ValidLicenseCategories are the license categories accepted for fleet
// drivers.
var ValidLicenseCategories = []string{"D", "E"}

// ValidDriverClasses are the recognised qualification classes.
var ValidDriverClasses = []int{1, 2, 3}

// Driver represents an employed driver, identified by an alphanumeric
// personnel number.
type Driver struct {
	clock Clock

	personnelNumber string
	fullName        string
	birthYear       int
	experienceYears int
	licenseCategory string
	driverClass     int
}

// NewDriver builds a validated Driver.
func NewDriver(clock Clock, personnelNumber, fullName string, birthYear, experienceYears int, licenseCategory string, driverClass int) (*Driver, error) {
	d := &Driver{clock: clock}

	if err := d.setPersonnelNumber(personnelNumber); err != nil {
		return nil, err
	}
	if err := d.SetFullName(fullName); err != nil {
		return nil, err
	}
	if err := d.setBirthYear(birthYear); err != nil {
		return nil, err
	}
	if err := d.SetExperienceYears(experienceYears); err != nil {
		return nil, err
	}
	if err := d.SetLicenseCategory(licenseCategory); err != nil {
		return nil, err
	}
	if err := d.SetDriverClass(driverClass); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Driver) PersonnelNumber() string { return d.personnelNumber }
func (d *Driver) FullName() string        { return d.fullName }
func (d *Driver) BirthYear() int          { return d.birthYear }
func (d *Driver) ExperienceYears() int    { return d.experienceYears }
func (d *Driver) LicenseCategory() string { return d.licenseCategory }
func (d *Driver) DriverClass() int        { return d.driverClass }

func (d *Driver) setPersonnelNumber(number string) error {
	number = strings.TrimSpace(number)
	if number == "" {
		return newValidationError("personnel_number", "must not be empty")
	}
	if len(number) < MinPersonnelNumberLen || len(number) > MaxPersonnelNumberLen {
		return newValidationError("personnel_number", "length must be between %d and %d characters",
			MinPersonnelNumberLen, MaxPersonnelNumberLen)
	}
	for _, r := range number {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return newValidationError("personnel_number", "must contain only letters and digits")
		}
	}
	d.personnelNumber = number
	return nil
}

// SetFullName updates the driver's full name.
func (d *Driver) SetFullName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return newValidationError("full_name", "must not be empty")
	}
	if len(name) < MinDriverNameLen || len(name) > MaxDriverNameLen {
		return newValidationError("full_name", "length must be between %d and %d characters",
			MinDriverNameLen, MaxDriverNameLen)
	}
	d.fullName = name
	return nil
}

func (d *Driver) setBirthYear(year int) error {
	currentYear := d.clock.Now().Year()
	minYear := currentYear - MaxDrivingAge
	maxYear := currentYear - MinDrivingAge
	if year < minYear || year > maxYear {
		return newValidationError("birth_year", "must be between %d and %d", minYear, maxYear)
	}
	d.birthYear = year
	return nil
}

// SetExperienceYears updates the years of driving experience. Experience is
// additionally bounded by the maximum plausible for the driver's age.
func (d *Driver) SetExperienceYears(experience int) error {
	if experience < 0 {
		return newValidationError("experience_years", "must not be negative")
	}
	if experience > MaxExperienceYears {
		return newValidationError("experience_years", "must not exceed %d years", MaxExperienceYears)
	}
	age := d.clock.Now().Year() - d.birthYear
	maxPlausible := age - MinDrivingAge
	if maxPlausible > 0 && experience > maxPlausible {
		return newValidationError("experience_years", "must not exceed %d years for this age", maxPlausible)
	}
	d.experienceYears = experience
	return nil
}

// SetLicenseCategory updates the license category.
func (d *Driver) SetLicenseCategory(category string) error {
	for _, valid := range ValidLicenseCategories {
		if category == valid {
			d.licenseCategory = category
			return nil
		}
	}
	return newValidationError("license_category", "must be one of: %s", strings.Join(ValidLicenseCategories, ", "))
}

// SetDriverClass updates the qualification class.
func (d *Driver) SetDriverClass(class int) error {
	for _, valid := range ValidDriverClasses {
		if class == valid {
			d.driverClass = class
			return nil
		}
	}
	return newValidationError("driver_class", "must be 1, 2 or 3")
}
