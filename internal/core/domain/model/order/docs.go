// Package order provides the Order aggregate and its status state machine.
//
// The package includes:
//   - Order: the aggregate root covering identity, customer/vehicle links, item details and timing
//   - Status: the lifecycle states and the allowed-transition table
//   - Type, Priority: order classification
//   - LineItem: the ordered record of services, labour codes and components on an order
//   - Event: lifecycle facts recorded by the aggregate for publication after commit
//
// Key business rules:
//   - Orders start in Created and move only through Transition, Cancel or QuickStop
//   - Completed and Cancelled are terminal; re-issuing the same terminal transition is a no-op
//   - Completing an order that ran for two hours or more needs a delay reason attached first
//   - Once the overrun note has been reported, its reporter and timestamp never change
//   - Details of a terminal order are read-only; only audit fields may still be written
package order
