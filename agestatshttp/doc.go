// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package agestatshttp builds the *http.Client used to talk to an age statistics
server.  Clients are created from unmarshaled configuration and decorated with
a chain of round tripper constructors, e.g. for static headers, request ids,
and request logging.
*/
package agestatshttp
