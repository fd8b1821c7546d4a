package domain

import "errors"

var (
	ErrListingNotFound    = errors.New("listing not found")
	ErrInvalidListingData = errors.New("invalid listing data")
	ErrInvalidStatus      = errors.New("invalid listing status")
	ErrMediaNotFound      = errors.New("media item not found")
	ErrCallbackNotFound   = errors.New("callback request not found")

	// ErrEmptyInput is returned when an uploaded spreadsheet has no data rows.
	ErrEmptyInput = errors.New("file contains no data")
	// ErrUnsupportedFormat is returned for uploads that are not .xlsx workbooks.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrGeocodeNotFound means the geocoder returned no match for a location.
	ErrGeocodeNotFound = errors.New("location could not be geocoded")
	// ErrUnrecognizedMediaURL means a media URL does not point into our bucket.
	ErrUnrecognizedMediaURL = errors.New("media url not recognized")
)
