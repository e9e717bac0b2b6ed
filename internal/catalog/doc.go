// Package catalog searches the public Google Books catalog.
//
// A search is a single GET against the volumes endpoint with the user's text
// rewritten by a scope prefix (intitle:, inauthor:, isbn:). There is no retry,
// no paging and no caching; the only deadline is the one carried by the
// caller's context.
package catalog
