// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package agestatstest contains test support for agestats: testify mocks for
the HTTP boundary and for agestats.Fetcher, a suite type for configuration-driven
fx tests, and an in-memory fake of the age statistics server.
*/
package agestatstest
