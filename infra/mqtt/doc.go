// Package mqtt wraps the Eclipse Paho client to publish prediction payloads.
package mqtt
