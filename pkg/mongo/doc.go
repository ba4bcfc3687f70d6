// Package mongo provides MongoDB connectivity for guestpass deployments that
// persist visitor records in Mongo (see pkg/visitormongo).
package mongo
