// Copyright 2018 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// dcm-dump prints the File Meta Information and the main Data Set of a DICOM
// Part 10 file.
//
//	usage: dcm-dump [-v] [-V] [-h] FILE_PATH
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/GoogleCloudPlatform/go-dicom-file/dicom"
)

const usage = "usage: dcm-dump [-v] [-V] [-h] FILE_PATH"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags := flag.NewFlagSet("dcm-dump", flag.ContinueOnError)
	verbose := flags.Bool("v", false, "log informational messages")
	printVersion := flags.Bool("V", false, "print the version and exit")
	help := flags.Bool("h", false, "print this usage and exit")
	flags.Usage = func() {
		fmt.Fprintln(flags.Output(), usage)
	}
	if err := flags.Parse(args); err != nil {
		return 1
	}

	if *help {
		fmt.Println(usage)
		return 0
	}
	if *printVersion {
		fmt.Println(dicom.Version())
		return 0
	}

	dicom.SetLogLevel(dicom.LogLevelError)
	if *verbose {
		dicom.SetLogLevel(dicom.LogLevelInfo)
	}

	if flags.NArg() != 1 {
		fmt.Fprintln(os.Stderr, usage)
		return 1
	}
	path := flags.Arg(0)

	file, err := dicom.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dcm-dump: reading file %q failed: %v\n", path, err)
		return 1
	}
	defer file.Close()

	fileMeta, err := file.ReadFileMeta()
	if err != nil {
		fmt.Fprintf(os.Stderr, "dcm-dump: reading file %q failed: %v\n", path, err)
		return 1
	}
	fmt.Println("===File Meta Information===")
	fmt.Println(fileMeta)

	metadata, err := file.ReadMetadata()
	if err != nil {
		fmt.Fprintf(os.Stderr, "dcm-dump: reading file %q failed: could not read data set: %v\n", path, err)
		return 1
	}
	fmt.Println("===Dataset===")
	fmt.Println(metadata)

	return 0
}
