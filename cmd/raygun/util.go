package main

import (
	"strings"
)

func splitByEquals(strs []string) map[string]string {
	kvps := map[string]string{}
	for _, kvp := range strs {
		if kvp != "" {
			pair := strings.SplitN(kvp, "=", 2)
			if len(pair) == 1 {
				pair = append(pair, "")
			}
			kvps[pair[0]] = pair[1]
		}
	}
	return kvps
}
