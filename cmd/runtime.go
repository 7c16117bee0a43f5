package cmd

// cRuntimeSource is the fixed C runtime linked against every compiled
// program. It defines the handful of symbols the emitted IR declares as
// externs: write_int, write_double, writeln_int, writeln_double,
// readln_int, readln_double, and error.
const cRuntimeSource = `#include <stdio.h>
#include <stdlib.h>
#include <stdarg.h>

int write_int(int x) {
    return printf("%d", x);
}

int write_double(double x) {
    return printf("%.3f", x);
}

int writeln_int(int x) {
    return printf("%d\n", x);
}

int writeln_double(double x) {
    return printf("%.3f\n", x);
}

int readln_int(int *x) {
    return scanf("%d", x);
}

int readln_double(double *x) {
    return scanf("%lf", x);
}

int error(const char *msg) {
    printf("%s", msg);
    exit(1);
    return 0;
}
`
