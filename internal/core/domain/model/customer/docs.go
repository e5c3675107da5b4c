// Package customer provides the Customer aggregate.
//
// Key business rules:
//   - Company, government and NGO customers need an organisation name and a tax number
//   - Personal customers need a subtype (owner or driver)
//   - Every order that references a customer counts as one visit
package customer
