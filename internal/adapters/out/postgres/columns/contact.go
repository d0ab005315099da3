// Package columns holds column groups shared by several tables.
package columns

import "storefront/internal/core/domain/model/kernel"

// ContactDTO is a contact snapshot embedded into a row, usually with a prefix
// such as "recipient_".
type ContactDTO struct {
	Name       string
	Phone      string
	Email      string
	Address    string
	PostalCode string
}

func ContactFromDomain(c kernel.Contact) ContactDTO {
	return ContactDTO{
		Name:       c.Name(),
		Phone:      c.Phone(),
		Email:      c.Email(),
		Address:    c.Address(),
		PostalCode: c.PostalCode(),
	}
}

// ToDomain rebuilds the contact. An all-empty snapshot yields the zero Contact.
func (c ContactDTO) ToDomain() (kernel.Contact, error) {
	if c == (ContactDTO{}) {
		return kernel.Contact{}, nil
	}
	return kernel.NewContact(c.Name, c.Phone, c.Email, c.Address, c.PostalCode)
}
