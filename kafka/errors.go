package kafka

import (
	"errors"
	"strings"
)

// Common Kafka producer error types that can be used by consumers of this package.
// These provide a standardized set of errors that abstract away the
// underlying Kafka-specific error details.
var (
	// ErrConnectionFailed is returned when connection to Kafka cannot be established
	ErrConnectionFailed = errors.New("connection failed")

	// ErrConnectionLost is returned when connection to Kafka is lost
	ErrConnectionLost = errors.New("connection lost")

	// ErrBrokerNotAvailable is returned when broker is not available
	ErrBrokerNotAvailable = errors.New("broker not available")

	// ErrReplicaNotAvailable is returned when replica is not available
	ErrReplicaNotAvailable = errors.New("replica not available")

	// ErrAuthenticationFailed is returned when authentication fails
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrAuthorizationFailed is returned when authorization fails
	ErrAuthorizationFailed = errors.New("authorization failed")

	// ErrInvalidCredentials is returned when credentials are invalid
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTopicNotFound is returned when topic doesn't exist
	ErrTopicNotFound = errors.New("topic not found")

	// ErrPartitionNotFound is returned when partition doesn't exist
	ErrPartitionNotFound = errors.New("partition not found")

	// ErrMessageTooLarge is returned when message exceeds size limits
	ErrMessageTooLarge = errors.New("message too large")

	// ErrInvalidMessage is returned when message format is invalid
	ErrInvalidMessage = errors.New("invalid message")

	// ErrLeaderNotAvailable is returned when partition leader is not available
	ErrLeaderNotAvailable = errors.New("leader not available")

	// ErrNotLeaderForPartition is returned when broker is not leader for partition
	ErrNotLeaderForPartition = errors.New("not leader for partition")

	// ErrRequestTimedOut is returned when request times out
	ErrRequestTimedOut = errors.New("request timed out")

	// ErrNetworkError is returned for network-related errors
	ErrNetworkError = errors.New("network error")

	// ErrUnsupportedVersion is returned when version is not supported
	ErrUnsupportedVersion = errors.New("unsupported version")

	// ErrInvalidConfig is returned when configuration is invalid
	ErrInvalidConfig = errors.New("invalid config")

	// ErrOutOfOrderSequence is returned when sequence is out of order
	ErrOutOfOrderSequence = errors.New("out of order sequence")

	// ErrDuplicateSequence is returned when sequence is duplicated
	ErrDuplicateSequence = errors.New("duplicate sequence")

	// ErrWriterClosed is returned when producing after GracefulShutdown
	ErrWriterClosed = errors.New("writer closed")

	// ErrContextCanceled is returned when context is canceled
	ErrContextCanceled = errors.New("context canceled")

	// ErrContextDeadlineExceeded is returned when context deadline is exceeded
	ErrContextDeadlineExceeded = errors.New("context deadline exceeded")
)

// DeliveryError is returned by Deliver. Code is a short snake_case
// classification of the failure ("leader_not_available", "unknown", ...)
// used to tag send_errors metrics.
type DeliveryError struct {
	Code string
	Err  error
}

func (e *DeliveryError) Error() string {
	return "kafka delivery failed (" + e.Code + "): " + e.Err.Error()
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel the failure was classified as,
// so errors.Is(err, kafka.ErrLeaderNotAvailable) works on delivery errors.
func (e *DeliveryError) Is(target error) bool {
	return e.Code != "unknown" && errorCode(target) == e.Code
}

// ErrorCode returns the failure classification.
func (e *DeliveryError) ErrorCode() string {
	return e.Code
}

// errorCode turns a translated sentinel into a metrics code.
// Errors that were not translated map to "unknown".
func errorCode(err error) string {
	if err == nil {
		return ""
	}
	for _, known := range knownErrors {
		if err == known {
			return strings.ReplaceAll(known.Error(), " ", "_")
		}
	}
	return "unknown"
}

var knownErrors = []error{
	ErrConnectionFailed, ErrConnectionLost, ErrBrokerNotAvailable, ErrReplicaNotAvailable,
	ErrAuthenticationFailed, ErrAuthorizationFailed, ErrInvalidCredentials,
	ErrTopicNotFound, ErrPartitionNotFound, ErrMessageTooLarge, ErrInvalidMessage,
	ErrLeaderNotAvailable, ErrNotLeaderForPartition, ErrRequestTimedOut, ErrNetworkError,
	ErrUnsupportedVersion, ErrInvalidConfig, ErrOutOfOrderSequence, ErrDuplicateSequence,
	ErrWriterClosed, ErrContextCanceled, ErrContextDeadlineExceeded,
}

// TranslateError translates Kafka-specific errors to standardized error types.
// Unrecognized errors are returned unchanged.
func (k *KafkaClient) TranslateError(err error) error {
	if err == nil {
		return nil
	}

	errMsg := strings.ToLower(err.Error())
	return translateByErrorMessage(errMsg, err)
}

// translateByErrorMessage maps error messages to standardized errors
func translateByErrorMessage(errMsg string, originalErr error) error {
	switch {
	// Connection errors
	case strings.Contains(errMsg, "connection refused"):
		return ErrConnectionFailed
	case strings.Contains(errMsg, "connection reset"):
		return ErrConnectionLost
	case strings.Contains(errMsg, "connection closed"):
		return ErrConnectionLost
	case strings.Contains(errMsg, "broker not available"):
		return ErrBrokerNotAvailable
	case strings.Contains(errMsg, "replica not available"):
		return ErrReplicaNotAvailable

	// Authentication errors
	case strings.Contains(errMsg, "sasl authentication failed"):
		return ErrAuthenticationFailed
	case strings.Contains(errMsg, "authentication failed"):
		return ErrAuthenticationFailed
	case strings.Contains(errMsg, "authorization failed"):
		return ErrAuthorizationFailed
	case strings.Contains(errMsg, "invalid credentials"):
		return ErrInvalidCredentials

	// Topic/Partition errors
	case strings.Contains(errMsg, "topic not found"):
		return ErrTopicNotFound
	case strings.Contains(errMsg, "unknown topic"):
		return ErrTopicNotFound
	case strings.Contains(errMsg, "partition not found"):
		return ErrPartitionNotFound
	case strings.Contains(errMsg, "unknown partition"):
		return ErrPartitionNotFound

	// Message errors
	case strings.Contains(errMsg, "message too large"):
		return ErrMessageTooLarge
	case strings.Contains(errMsg, "record too large"):
		return ErrMessageTooLarge
	case strings.Contains(errMsg, "message size too large"):
		return ErrMessageTooLarge
	case strings.Contains(errMsg, "invalid message"):
		return ErrInvalidMessage

	// Leader errors
	case strings.Contains(errMsg, "leader not available"):
		return ErrLeaderNotAvailable
	case strings.Contains(errMsg, "not leader for partition"):
		return ErrNotLeaderForPartition

	// Timeout errors
	case strings.Contains(errMsg, "deadline exceeded"):
		return ErrContextDeadlineExceeded
	case strings.Contains(errMsg, "request timed out"):
		return ErrRequestTimedOut
	case strings.Contains(errMsg, "timeout"):
		return ErrRequestTimedOut

	// Network errors
	case strings.Contains(errMsg, "network"):
		return ErrNetworkError
	case strings.Contains(errMsg, "dial"):
		return ErrNetworkError

	// Version errors
	case strings.Contains(errMsg, "unsupported version"):
		return ErrUnsupportedVersion

	// Config errors
	case strings.Contains(errMsg, "invalid config"):
		return ErrInvalidConfig

	// Sequence errors
	case strings.Contains(errMsg, "out of order sequence"):
		return ErrOutOfOrderSequence
	case strings.Contains(errMsg, "duplicate sequence"):
		return ErrDuplicateSequence

	// Context errors
	case strings.Contains(errMsg, "context canceled"):
		return ErrContextCanceled
	case strings.Contains(errMsg, "context cancelled"):
		return ErrContextCanceled

	default:
		return originalErr
	}
}

// IsRetryableError reports whether a delivery that failed with err could
// succeed on a later attempt.
func (k *KafkaClient) IsRetryableError(err error) bool {
	switch {
	case errors.Is(err, ErrConnectionFailed),
		errors.Is(err, ErrConnectionLost),
		errors.Is(err, ErrBrokerNotAvailable),
		errors.Is(err, ErrReplicaNotAvailable),
		errors.Is(err, ErrLeaderNotAvailable),
		errors.Is(err, ErrNotLeaderForPartition),
		errors.Is(err, ErrRequestTimedOut),
		errors.Is(err, ErrNetworkError):
		return true
	default:
		return false
	}
}

// IsPermanentError reports whether err will not go away by retrying.
func (k *KafkaClient) IsPermanentError(err error) bool {
	switch {
	case errors.Is(err, ErrAuthenticationFailed),
		errors.Is(err, ErrAuthorizationFailed),
		errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrTopicNotFound),
		errors.Is(err, ErrPartitionNotFound),
		errors.Is(err, ErrMessageTooLarge),
		errors.Is(err, ErrInvalidMessage),
		errors.Is(err, ErrInvalidConfig),
		errors.Is(err, ErrUnsupportedVersion),
		errors.Is(err, ErrWriterClosed):
		return true
	default:
		return false
	}
}

// IsAuthenticationError checks if an error is related to authentication or authorization.
func (k *KafkaClient) IsAuthenticationError(err error) bool {
	switch {
	case errors.Is(err, ErrAuthenticationFailed),
		errors.Is(err, ErrAuthorizationFailed),
		errors.Is(err, ErrInvalidCredentials):
		return true
	default:
		return false
	}
}
