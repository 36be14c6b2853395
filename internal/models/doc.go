// Package models defines the core domain records for the restaurant
// ordering backend.
//
// # Entities
//
//   - Category: a menu section (appetizers, mains, ...)
//   - MenuItem: a priced, categorized dish
//   - CartLine: one item selection in a user's pending cart
//   - Order / OrderLine: an immutable snapshot of a cart at checkout
//   - User: a registered account; role membership lives in a set-valued
//     roles table, not on the struct
//
// # Design Principles
//
// 1. **No live object graphs**: relationships are ID strings resolved
// through storage lookups, so each entity loads and stores independently.
// 2. **Price snapshots**: cart and order lines copy the menu price at
// add-time; later menu edits never change a placed order.
// 3. **Decimal money**: all amounts are decimal.Decimal with two fraction
// digits, never floats.
package models
