// Package services holds domain services that need more than one aggregate or
// reference data to decide.
//
//   - ItemResolver picks the item an order is about from competing sources:
//     labour code first, then a manually typed item, then an inventory item.
//   - DelayTracker decides whether a completion needs a delay reason and
//     records delay and overrun justifications on the order.
package services
