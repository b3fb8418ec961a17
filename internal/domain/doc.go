// Package domain defines the entities shared by the relational and document
// stores: Products (document store), Orders, Tasks and Todos (relational
// store), and the typed ProductID reference that links an Order to its
// Product across the two stores.
package domain
