// Package chat provides the Chat aggregate and its immutable messages.
//
// A chat links one customer and one performer in the context of one order.
// The order is not referenced by id: it is encoded in the room name
// "Order #<id>: <title>" and parsed back when the chat needs it. Each side has
// its own read mark and its own soft-delete flag; neither ever removes rows.
package chat
