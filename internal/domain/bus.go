package domain

import "strings"

// Bounds for bus fields.
const (
	MinGovernmentNumberLen = 3
	MaxGovernmentNumberLen = 20
	MinBusCapacity         = 5
	MaxBusCapacity         = 200
	MinManufactureYear     = 1900
)

// Bus represents a vehicle of the fleet, identified by its government
// number. All fields are validated on construction and on every mutation;
// the identity is immutable after creation.
type Bus struct {
	clock Clock

	governmentNumber   string
	brandModel         string
	capacity           int
	yearOfManufacture  int
	yearOfOverhaul     *int
	mileageAtYearStart int
	photoPath          string
}

// NewBus builds a validated Bus.
func NewBus(clock Clock, governmentNumber, brandModel string, capacity, yearOfManufacture, mileageAtYearStart int) (*Bus, error) {
	b := &Bus{clock: clock}

	if err := b.setGovernmentNumber(governmentNumber); err != nil {
		return nil, err
	}
	b.brandModel = strings.TrimSpace(brandModel)
	if err := b.SetCapacity(capacity); err != nil {
		return nil, err
	}
	if err := b.setYearOfManufacture(yearOfManufacture); err != nil {
		return nil, err
	}
	if err := b.SetMileageAtYearStart(mileageAtYearStart); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Bus) GovernmentNumber() string { return b.governmentNumber }
func (b *Bus) BrandModel() string       { return b.brandModel }
func (b *Bus) Capacity() int            { return b.capacity }
func (b *Bus) YearOfManufacture() int   { return b.yearOfManufacture }
func (b *Bus) MileageAtYearStart() int  { return b.mileageAtYearStart }
func (b *Bus) PhotoPath() string        { return b.photoPath }

// YearOfOverhaul returns the overhaul year and whether one is set.
func (b *Bus) YearOfOverhaul() (int, bool) {
	if b.yearOfOverhaul == nil {
		return 0, false
	}
	return *b.yearOfOverhaul, true
}

func (b *Bus) setGovernmentNumber(number string) error {
	number = strings.TrimSpace(number)
	if number == "" {
		return newValidationError("government_number", "must not be empty")
	}
	if len(number) < MinGovernmentNumberLen || len(number) > MaxGovernmentNumberLen {
		return newValidationError("government_number", "length must be between %d and %d characters",
			MinGovernmentNumberLen, MaxGovernmentNumberLen)
	}
	b.governmentNumber = number
	return nil
}

// SetCapacity updates the seat capacity.
func (b *Bus) SetCapacity(capacity int) error {
	if capacity < MinBusCapacity || capacity > MaxBusCapacity {
		return newValidationError("capacity", "must be between %d and %d seats", MinBusCapacity, MaxBusCapacity)
	}
	b.capacity = capacity
	return nil
}

func (b *Bus) setYearOfManufacture(year int) error {
	currentYear := b.clock.Now().Year()
	if year < MinManufactureYear || year > currentYear {
		return newValidationError("year_of_manufacture", "must be between %d and %d", MinManufactureYear, currentYear)
	}
	b.yearOfManufacture = year
	return nil
}

// SetYearOfOverhaul records an overhaul year. It may not precede the year
// of manufacture or lie in the future.
func (b *Bus) SetYearOfOverhaul(year int) error {
	if year < b.yearOfManufacture {
		return newValidationError("year_of_overhaul", "must not precede the year of manufacture")
	}
	if year > b.clock.Now().Year() {
		return newValidationError("year_of_overhaul", "must not be in the future")
	}
	b.yearOfOverhaul = &year
	return nil
}

// ClearYearOfOverhaul removes the overhaul record.
func (b *Bus) ClearYearOfOverhaul() { b.yearOfOverhaul = nil }

// SetMileageAtYearStart updates the mileage counted at the start of the year.
func (b *Bus) SetMileageAtYearStart(mileage int) error {
	if mileage < 0 {
		return newValidationError("mileage_at_year_start", "must not be negative")
	}
	b.mileageAtYearStart = mileage
	return nil
}

// SetBrandModel updates the brand/model designation.
func (b *Bus) SetBrandModel(brandModel string) { b.brandModel = strings.TrimSpace(brandModel) }

// SetPhotoPath stores an opaque photo reference; path handling lives outside
// the core.
func (b *Bus) SetPhotoPath(path string) { b.photoPath = path }
