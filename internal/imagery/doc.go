// Package imagery handles image decoding and the conversions between decoded
// images and the numeric forms the feature pipeline works on.
//
// Supported input formats are PNG, JPEG, GIF, and TIFF. Pathology exports
// commonly ship label masks as 16-bit grayscale TIFF or PNG; both depths are
// handled.
//
// Two numeric forms are produced:
//
//   - Matrix: a row-major float64 luminance image in [0, 1], used for the
//     nucleus and cytoplasm intensity channels.
//   - labels.LabelImage: an integer mask where the pixel value is the object
//     ID, decoded from 8- or 16-bit grayscale images.
//
// # Thread Safety
//
// The Cache type is safe for concurrent use. Conversions are stateless and
// can run concurrently on different images.
package imagery
