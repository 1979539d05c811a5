// Package service composes stores, serializers and authorization checks into
// the ad, user and selection operations exposed by the API.
//
// Each exported method is one API operation. Methods that mutate guarded
// records take the authz.Actor making the request and run its check chain
// before reading the request body.
package service
