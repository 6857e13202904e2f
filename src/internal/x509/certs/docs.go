// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509certs reads and writes the certificate file formats handled by
// the converter. On the [X.509] side it accepts [PEM], DER and [PKCS7] bundles
// and yields raw DER certificates; on the compact side it splits CBOR
// sequences, in binary or hex text, into individual compact certificates.
//
// [X.509]: https://grokipedia.com/page/X.509
// [PKCS7]: https://grokipedia.com/page/PKCS_7
// [PEM]: https://grokipedia.com/page/PEM#privacy-enhanced-mail
package x509certs
