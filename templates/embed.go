package templates

import "embed"

// SMSFS contains text/template message bodies sent through the SMS gateway.
//
//go:embed sms/*
var SMSFS embed.FS
