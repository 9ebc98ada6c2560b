// Timely Tourist - Travel Destination Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/timelytourist

/*
Package cli implements ttctl, the artifact tool for the recommendation
service.

Commands:

	ttctl build-metadata --dataset data.csv [--version N]
	ttctl import scaler|classifier FILE.json [--version N]
	ttctl prune [KIND...] [--keep 3]
	ttctl delete KIND VERSION
	ttctl inspect [--registry PATH] [--history N]
	ttctl recommend --personality P --category C [--motivation M] [--concerns X] [-n 5]
	ttctl similar LOCATION [-n 5]

Every command takes --artifacts (default ARTIFACTS_DIR or /data/artifacts)
and --json where it prints results.

build-metadata produces the metadata artifact. The scaler and classifier
are trained elsewhere against its feature order and brought in with
import, which rejects files whose width differs from the latest metadata.
*/
package cli
