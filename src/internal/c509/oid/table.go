// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package c509oid

// Version is the revision of the [Default] table.
const Version = 1

// derNull is the encoded NULL parameter of RSA algorithm identifiers.
var derNull = []byte{0x05, 0x00}

type row struct {
	tag    uint64
	name   string
	dotted string
	family Family
	params []byte
}

var defaultRows = map[Category][]row{
	SignatureAlgorithm: {
		{0, "ecdsa-with-SHA256", "1.2.840.10045.4.3.2", FamilyECDSA, nil},
		{1, "ecdsa-with-SHA384", "1.2.840.10045.4.3.3", FamilyECDSA, nil},
		{2, "ecdsa-with-SHA512", "1.2.840.10045.4.3.4", FamilyECDSA, nil},
		{12, "Ed25519", "1.3.101.112", FamilyEdDSA, nil},
		{13, "Ed448", "1.3.101.113", FamilyEdDSA, nil},
		{14, "hmacWithSHA256", "1.2.840.113549.2.9", FamilyMAC, nil},
		{15, "hmacWithSHA384", "1.2.840.113549.2.10", FamilyMAC, nil},
		{16, "hmacWithSHA512", "1.2.840.113549.2.11", FamilyMAC, nil},
		{23, "sha256WithRSAEncryption", "1.2.840.113549.1.1.11", FamilyRSA, derNull},
		{24, "sha384WithRSAEncryption", "1.2.840.113549.1.1.12", FamilyRSA, derNull},
		{25, "sha512WithRSAEncryption", "1.2.840.113549.1.1.13", FamilyRSA, derNull},
		{30, "sha1WithRSAEncryption", "1.2.840.113549.1.1.5", FamilyRSA, derNull},
		{31, "ecdsa-with-SHA1", "1.2.840.10045.4.1", FamilyECDSA, nil},
	},
	PublicKeyAlgorithm: {
		{0, "rsaEncryption", "1.2.840.113549.1.1.1", FamilyRSA, derNull},
		{1, "id-ecPublicKey", "1.2.840.10045.2.1", FamilyEC, nil},
		{8, "X25519", "1.3.101.110", FamilyOpaque, nil},
		{9, "X448", "1.3.101.111", FamilyOpaque, nil},
		{10, "Ed25519", "1.3.101.112", FamilyOpaque, nil},
		{11, "Ed448", "1.3.101.113", FamilyOpaque, nil},
	},
	Curve: {
		{1, "secp256r1", "1.2.840.10045.3.1.7", FamilyNone, nil},
		{2, "secp384r1", "1.3.132.0.34", FamilyNone, nil},
		{3, "secp521r1", "1.3.132.0.35", FamilyNone, nil},
		{4, "secp256k1", "1.3.132.0.10", FamilyNone, nil},
	},
	Extension: {
		{1, "subjectKeyIdentifier", "2.5.29.14", FamilyNone, nil},
		{2, "keyUsage", "2.5.29.15", FamilyNone, nil},
		{3, "subjectAltName", "2.5.29.17", FamilyNone, nil},
		{4, "basicConstraints", "2.5.29.19", FamilyNone, nil},
		{5, "cRLDistributionPoints", "2.5.29.31", FamilyNone, nil},
		{6, "certificatePolicies", "2.5.29.32", FamilyNone, nil},
		{7, "authorityKeyIdentifier", "2.5.29.35", FamilyNone, nil},
		{8, "extKeyUsage", "2.5.29.37", FamilyNone, nil},
		{9, "authorityInfoAccess", "1.3.6.1.5.5.7.1.1", FamilyNone, nil},
		{10, "signedCertificateTimestampList", "1.3.6.1.4.1.11129.2.4.2", FamilyNone, nil},
		{24, "subjectDirectoryAttributes", "2.5.29.9", FamilyNone, nil},
		{25, "issuerAltName", "2.5.29.18", FamilyNone, nil},
		{26, "nameConstraints", "2.5.29.30", FamilyNone, nil},
		{27, "policyMappings", "2.5.29.33", FamilyNone, nil},
		{28, "policyConstraints", "2.5.29.36", FamilyNone, nil},
		{29, "freshestCRL", "2.5.29.46", FamilyNone, nil},
		{30, "inhibitAnyPolicy", "2.5.29.54", FamilyNone, nil},
		{31, "subjectInfoAccess", "1.3.6.1.5.5.7.1.11", FamilyNone, nil},
	},
	Attribute: {
		{0, "emailAddress", "1.2.840.113549.1.9.1", FamilyNone, nil},
		{1, "commonName", "2.5.4.3", FamilyNone, nil},
		{2, "surname", "2.5.4.4", FamilyNone, nil},
		{3, "serialNumber", "2.5.4.5", FamilyNone, nil},
		{4, "countryName", "2.5.4.6", FamilyNone, nil},
		{5, "localityName", "2.5.4.7", FamilyNone, nil},
		{6, "stateOrProvinceName", "2.5.4.8", FamilyNone, nil},
		{7, "streetAddress", "2.5.4.9", FamilyNone, nil},
		{8, "organizationName", "2.5.4.10", FamilyNone, nil},
		{9, "organizationalUnitName", "2.5.4.11", FamilyNone, nil},
		{10, "title", "2.5.4.12", FamilyNone, nil},
		{11, "givenName", "2.5.4.42", FamilyNone, nil},
		{12, "initials", "2.5.4.43", FamilyNone, nil},
		{13, "generationQualifier", "2.5.4.44", FamilyNone, nil},
		{14, "dnQualifier", "2.5.4.46", FamilyNone, nil},
		{15, "pseudonym", "2.5.4.65", FamilyNone, nil},
		{16, "organizationIdentifier", "2.5.4.97", FamilyNone, nil},
		{17, "domainComponent", "0.9.2342.19200300.100.1.25", FamilyNone, nil},
		{18, "userId", "0.9.2342.19200300.100.1.1", FamilyNone, nil},
	},
}

// DefaultEntries returns a fresh copy of the version 1 table, suitable for
// building a customized registry with [NewRegistry].
func DefaultEntries() []Entry {
	var entries []Entry
	for _, cat := range Categories() {
		for _, r := range defaultRows[cat] {
			entries = append(entries, Entry{
				Category: cat,
				Tag:      r.tag,
				Name:     r.name,
				OID:      MustParse(r.dotted),
				Family:   r.family,
				Params:   r.params,
			})
		}
	}
	return entries
}

// Default is the version 1 registry shared by every conversion.
var Default = mustRegistry(Version, DefaultEntries())

func mustRegistry(version int, entries []Entry) *Registry {
	r, err := NewRegistry(version, entries)
	if err != nil {
		panic(err)
	}
	return r
}
