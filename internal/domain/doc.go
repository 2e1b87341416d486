// Package domain holds the types shared by every layer: the error taxonomy
// used to classify pipeline failures and the ConversionRequest that carries a
// caller's options into the image pipeline.
package domain
