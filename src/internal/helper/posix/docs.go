// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package posix provides [POSIX]-style path helpers that behave the same on
// every operating system.
//
// Key functions:
//   - GetExecutableName: Returns the executable name without extension for CLI usage
//   - ReplaceExt: Derives output file names such as leaf.pem → leaf.c509
//   - IndexedName: Numbers outputs of inputs that hold several certificates
//
// [POSIX]: https://grokipedia.com/page/POSIX
package posix
